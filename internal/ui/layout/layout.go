// Package layout draws the chrome around the active screen: a brand bar
// on top, key hints at the bottom and the screen body in between.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/ui/theme"
)

// Smallest terminal the quiz and analytics screens fit in.
const (
	MinWidth  = 80
	MinHeight = 24
)

const brand = "EduTutor AI"

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Terminal too small"),
		"",
		theme.Body.Render(fmt.Sprintf("EduTutor needs at least %d x %d", MinWidth, MinHeight)),
		theme.Hint.Render(fmt.Sprintf("currently %d x %d", width, height)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// Frame is the chrome for one render pass.
type Frame struct {
	Title string
	// User is the signed-in username, empty before login.
	User  string
	Hints []KeyHint
}

func rule(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
}

// Header renders the brand badge, the screen title centred and the user
// on the right, underlined by a rule.
func (f Frame) Header(width int) string {
	badge := theme.Badge.Render("◆ " + brand)
	user := ""
	if f.User != "" {
		user = lipgloss.NewStyle().Foreground(theme.Secondary).Render("● " + f.User + " ")
	}

	side := max(lipgloss.Width(badge), lipgloss.Width(user))
	middle := max(width-2*side, 0)
	title := lipgloss.PlaceHorizontal(middle, lipgloss.Center, theme.Body.Bold(true).Render(f.Title))

	bar := lipgloss.PlaceHorizontal(side, lipgloss.Left, badge) +
		title +
		lipgloss.PlaceHorizontal(side, lipgloss.Right, user)
	return lipgloss.JoinVertical(lipgloss.Left, bar, rule(width))
}

// Footer renders the key hints under a rule.
func (f Frame) Footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := desc.Render("  •  ")

	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rule(width), " "+strings.Join(parts, sep))
}

// Render composes header, body and footer to exactly width x height.
// body is called with the space left between header and footer.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	header := f.Header(width)
	footer := f.Footer(width)
	inner := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().Width(width).Height(inner).MaxHeight(inner).Render(body(width, inner))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
