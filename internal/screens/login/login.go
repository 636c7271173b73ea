// Package login implements the sign-in and sign-up screen.
package login

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/screen"
	"github.com/edututor/edututor/internal/screens"
	"github.com/edututor/edututor/internal/session"
	"github.com/edututor/edututor/internal/ui/components"
	"github.com/edututor/edututor/internal/ui/layout"
	"github.com/edututor/edututor/internal/ui/theme"
)

type tab int

const (
	tabLogin tab = iota
	tabSignUp
)

// Form messages.
const (
	msgLoginMissing    = "Please enter both username and password"
	msgSignUpMissing   = "Please fill in all fields"
	msgPasswordsDiffer = "Passwords do not match"
	msgSignedUp        = "Account created successfully! Please login."
)

var (
	loginButtons  = []string{"Login", "Try demo account", "Create an account"}
	signUpButtons = []string{"Create Account", "Back to login"}
)

// LoginScreen has a Login tab and a Sign Up tab. Focus moves through the
// tab's inputs and then its buttons.
type LoginScreen struct {
	deps *screens.Deps
	tab  tab

	// Login tab.
	username components.TextInput
	password components.TextInput

	// Sign Up tab.
	newUsername components.TextInput
	email       components.TextInput
	newPassword components.TextInput
	confirm     components.TextInput

	focus  int
	notice string
	ok     bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen on the Login tab.
func New(deps *screens.Deps) *LoginScreen {
	return &LoginScreen{
		deps:        deps,
		username:    components.NewTextInput("Username", "Enter your username", false, 32),
		password:    components.NewTextInput("Password", "Enter your password", true, 64),
		newUsername: components.NewTextInput("Username", "Choose a username", false, 32),
		email:       components.NewTextInput("Email", "your@email.com", false, 64),
		newPassword: components.NewTextInput("Password", "Create a password", true, 64),
		confirm:     components.NewTextInput("Confirm Password", "Confirm your password", true, 64),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *LoginScreen) Title() string {
	if s.tab == tabSignUp {
		return "Sign Up"
	}
	return "Login"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) inputs() []*components.TextInput {
	if s.tab == tabSignUp {
		return []*components.TextInput{&s.newUsername, &s.email, &s.newPassword, &s.confirm}
	}
	return []*components.TextInput{&s.username, &s.password}
}

func (s *LoginScreen) buttons() []string {
	if s.tab == tabSignUp {
		return signUpButtons
	}
	return loginButtons
}

func (s *LoginScreen) focusCount() int {
	return len(s.inputs()) + len(s.buttons())
}

// setFocus moves focus to item i, wrapping around.
func (s *LoginScreen) setFocus(i int) tea.Cmd {
	n := s.focusCount()
	s.focus = (i%n + n) % n

	var cmd tea.Cmd
	for j, in := range s.inputs() {
		if j == s.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (s *LoginScreen) switchTab(t tab) tea.Cmd {
	s.tab = t
	return s.setFocus(0)
}

// Back returns from the Sign Up tab to the Login tab.
func (s *LoginScreen) Back() (bool, tea.Cmd) {
	if s.tab != tabSignUp {
		return false, nil
	}
	s.setNotice("", false)
	return true, s.switchTab(tabLogin)
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.updateFocusedInput(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s, s.setFocus(s.focus - 1)
	case "enter":
		if s.focus < len(s.inputs()) {
			return s, s.setFocus(s.focus + 1)
		}
		return s, s.press(s.focus - len(s.inputs()))
	}

	return s, s.updateFocusedInput(msg)
}

func (s *LoginScreen) updateFocusedInput(msg tea.Msg) tea.Cmd {
	inputs := s.inputs()
	if s.focus >= len(inputs) {
		return nil
	}
	var cmd tea.Cmd
	*inputs[s.focus], cmd = inputs[s.focus].Update(msg)
	return cmd
}

func (s *LoginScreen) press(button int) tea.Cmd {
	if s.tab == tabSignUp {
		switch button {
		case 0:
			return s.signUp()
		case 1:
			s.setNotice("", false)
			return s.switchTab(tabLogin)
		}
		return nil
	}

	switch button {
	case 0:
		return s.login()
	case 1:
		return s.loginDemo()
	case 2:
		s.setNotice("", false)
		return s.switchTab(tabSignUp)
	}
	return nil
}

func (s *LoginScreen) login() tea.Cmd {
	username := strings.TrimSpace(s.username.Value())
	password := s.password.Value()
	if username == "" || password == "" {
		s.setNotice(msgLoginMissing, false)
		return nil
	}
	if err := s.deps.Session.Login(context.Background(), username, password); err != nil {
		s.setNotice(sentence(err), false)
		return nil
	}
	return screens.Replace(s.deps.Dashboard)
}

func (s *LoginScreen) loginDemo() tea.Cmd {
	if err := s.deps.Session.LoginDemo(context.Background()); err != nil {
		s.setNotice(sentence(err), false)
		return nil
	}
	return screens.Replace(s.deps.Dashboard)
}

func (s *LoginScreen) signUp() tea.Cmd {
	username := strings.TrimSpace(s.newUsername.Value())
	email := strings.TrimSpace(s.email.Value())
	password := s.newPassword.Value()
	confirm := s.confirm.Value()

	if username == "" || email == "" || password == "" || confirm == "" {
		s.setNotice(msgSignUpMissing, false)
		return nil
	}
	if password != confirm {
		s.setNotice(msgPasswordsDiffer, false)
		return nil
	}

	err := s.deps.Session.Register(context.Background(), username, email, password)
	if err != nil {
		s.setNotice(sentence(err), false)
		return nil
	}

	for _, in := range s.inputs() {
		in.Reset()
	}
	s.username.Model.SetValue(username)
	s.password.Reset()
	s.setNotice(msgSignedUp, true)
	s.tab = tabLogin
	return s.setFocus(1)
}

func (s *LoginScreen) setNotice(msg string, ok bool) {
	s.notice = msg
	s.ok = ok
}

// sentence capitalizes an error message for display.
func sentence(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 56 {
		cw = 56
	}

	tabStyle := lipgloss.NewStyle().Padding(0, 2)
	loginTab := tabStyle.Foreground(theme.TextDim).Render("Login")
	signUpTab := tabStyle.Foreground(theme.TextDim).Render("Sign Up")
	active := tabStyle.Foreground(theme.Text).Background(theme.Primary).Bold(true)
	if s.tab == tabSignUp {
		signUpTab = active.Render("Sign Up")
	} else {
		loginTab = active.Render("Login")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Welcome to EduTutor AI") + "\n")
	b.WriteString(theme.Subtitle.Render("Your personalized learning companion") + "\n\n")
	b.WriteString(loginTab + " " + signUpTab + "\n\n")

	for _, in := range s.inputs() {
		b.WriteString(in.View() + "\n\n")
	}

	focusedButton := s.focus - len(s.inputs())
	b.WriteString(components.ButtonRow(s.buttons(), focusedButton))

	if s.notice != "" {
		b.WriteString("\n\n" + components.Notice(s.notice, s.ok))
	}
	if s.tab == tabLogin {
		b.WriteString("\n\n" + theme.Hint.Render("Demo account: "+session.DemoUsername+" / "+session.DemoPassword))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}
