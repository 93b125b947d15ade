package tui

import (
	"strings"
)

var introLines = []string{
	"Every level is a small circuit of logic gates.",
	"Flip the switches until every bulb lights up.",
	"",
	"1-9, a-g   toggle a switch",
	"arrows     move the cursor, space toggles it",
	"r          reset the board",
	"h          show the hint",
	"esc        back to the level list",
	"",
	"Some levels limit your moves or your time.",
	"Solve one to earn its star.",
}

// renderIntro draws the first-run screen.
func renderIntro(theme Theme, width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("L O G I C   A R C A D E"), width))
	b.WriteString("\n\n")

	body := theme.MenuDescription.Render(strings.Join(introLines, "\n"))
	b.WriteString(centerText(theme.TableBorder.Render(body), width))
	b.WriteString("\n\n")

	b.WriteString(centerText(theme.Controls.Render("Any key: Continue  |  Q: Quit"), width))
	b.WriteString("\n")
	return b.String()
}
