package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/router"
	"github.com/edututor/edututor/internal/screen"
	"github.com/edututor/edututor/internal/screens"
	"github.com/edututor/edututor/internal/screens/analytics"
	"github.com/edututor/edututor/internal/screens/dashboard"
	"github.com/edututor/edututor/internal/screens/login"
	"github.com/edututor/edututor/internal/screens/profile"
	"github.com/edututor/edututor/internal/screens/quiz"
	"github.com/edututor/edututor/internal/screens/welcome"
	"github.com/edututor/edututor/internal/session"
	"github.com/edututor/edututor/internal/store"
	"github.com/edututor/edututor/internal/ui/layout"
)

// Options holds the services the TUI runs on.
type Options struct {
	Session *session.Manager
	Quizzes *quizgen.Service
	Events  store.EventRepo

	DefaultSubject    string
	DefaultDifficulty quizgen.Difficulty
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *session.Manager
	width   int
	height  int
}

// newDeps wires the screen factories together.
func newDeps(opts Options) *screens.Deps {
	deps := &screens.Deps{
		Session:           opts.Session,
		Quizzes:           opts.Quizzes,
		Events:            opts.Events,
		DefaultSubject:    opts.DefaultSubject,
		DefaultDifficulty: opts.DefaultDifficulty,
	}
	deps.Login = func() screen.Screen { return login.New(deps) }
	deps.Dashboard = func() screen.Screen { return dashboard.New(deps) }
	deps.Quiz = func() screen.Screen { return quiz.New(deps) }
	deps.Analytics = func() screen.Screen { return analytics.New(deps) }
	deps.Profile = func() screen.Screen { return profile.New(deps) }
	return deps
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	deps := newDeps(opts)
	return AppModel{
		router:  router.New(welcome.New(deps.Login)),
		session: opts.Session,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.BackHandler); ok {
				if handled, cmd := b.Back(); handled {
					return m, cmd
				}
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	user := ""
	if u := m.session.CurrentUser(); u != nil {
		user = u.Username
	}

	frame := layout.Frame{Title: title, User: user, Hints: m.footerHints()}
	return frame.Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
