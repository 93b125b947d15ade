package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles used outside the board canvas.
type Theme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemMuted   lipgloss.Style
	MenuDescription lipgloss.Style
	Star            lipgloss.Style

	// Footer and table styles
	Controls    lipgloss.Style
	TableBorder lipgloss.Style
	Empty       lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Star:            lipgloss.NewStyle().Foreground(lipgloss.Color("220")),

		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		TableBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Bold(true).Reverse(true)
	theme.Star = lipgloss.NewStyle().Bold(true)
	return theme
}

var currentTheme = DefaultTheme()

// SetTheme sets the theme used by every screen created afterwards.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	return currentTheme
}

// centerText centers text within width, measuring printable cells only.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
