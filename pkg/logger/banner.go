package logger

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bannerStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(lipgloss.Color("204")).
	Padding(0, 1)

// Banner renders a bold title followed by lines inside a double border.
// Empty lines are skipped.
func Banner(title string, lines ...string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return bannerStyle.Render(b.String())
}
