package components

import (
	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/ui/theme"
)

// ProgressBar is a static, labelled bar drawn with the bubbles progress
// renderer in the brand gradient.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

// View renders label, bar and the optional percentage within Width cells.
// The bar never shrinks below 4 cells.
func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}

	opts := []progress.Option{
		progress.WithColors(theme.Primary, theme.Secondary),
		progress.WithScaled(true),
		progress.WithFillCharacters('█', '░'),
	}
	if !p.ShowPercent {
		opts = append(opts, progress.WithoutPercentage())
	}
	bar := progress.New(opts...)
	bar.EmptyColor = theme.Border
	bar.PercentageStyle = lipgloss.NewStyle().Foreground(theme.TextDim)

	// The percentage text is part of the bubbles width.
	bar.SetWidth(max(p.Width-lipgloss.Width(label), 4))
	return label + bar.ViewAs(min(max(p.Percent, 0), 1))
}
