package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ██╗   ██╗████████╗██╗   ██╗████████╗ ██████╗ ██████╗
 ██╔════╝██╔══██╗██║   ██║╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗
 █████╗  ██║  ██║██║   ██║   ██║   ██║   ██║   ██║   ██║   ██║██████╔╝
 ██╔══╝  ██║  ██║██║   ██║   ██║   ██║   ██║   ██║   ██║   ██║██╔══██╗
 ███████╗██████╔╝╚██████╔╝   ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║
 ╚══════╝╚═════╝  ╚═════╝    ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "E D U T U T O R"

// RenderBanner draws the EDUTUTOR logo with each row blended from the
// primary to the secondary colour. Below 74 columns it falls back to the
// spaced-out word.
func RenderBanner(width int) string {
	if width < 74 {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(bannerCompact)
	}

	rows := strings.Split(strings.Trim(bannerArt, "\n"), "\n")
	var b strings.Builder
	for i, row := range rows {
		cells := []rune(row)
		ramp := lipgloss.Blend1D(len(cells), theme.Primary, theme.Secondary)
		for j, r := range cells {
			b.WriteString(lipgloss.NewStyle().Foreground(ramp[j]).Render(string(r)))
		}
		if i < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
