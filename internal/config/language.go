package config

import (
	"strings"

	"golang.org/x/text/language"
)

var supportedTags = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var tagMatcher = language.NewMatcher(supportedTags)

// SupportedLanguages returns the languages the UI can show.
func SupportedLanguages() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// NormalizeLanguage maps any BCP 47 value to the closest supported tag.
// Unknown or malformed values fall back to English.
func NormalizeLanguage(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.English
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return language.English
	}
	_, idx, conf := tagMatcher.Match(parsed)
	if conf == language.No {
		return language.English
	}
	return supportedTags[idx]
}
