package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edututor/edututor/internal/screen"
)

type fakeScreen struct {
	name  string
	inits int
	keys  []string
}

type initMsg struct{ name string }

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return func() tea.Msg { return initMsg{f.name} }
}

func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		f.keys = append(f.keys, k.String())
	}
	return f, nil
}

func (f *fakeScreen) View(w, h int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
		want []string
	}{
		{"push", []tea.Msg{PushScreenMsg{&fakeScreen{name: "quiz"}}}, []string{"dashboard", "quiz"}},
		{"push then pop", []tea.Msg{PushScreenMsg{&fakeScreen{name: "quiz"}}, PopScreenMsg{}}, []string{"dashboard"}},
		{"pop keeps the root", []tea.Msg{PopScreenMsg{}, PopScreenMsg{}}, []string{"dashboard"}},
		{"replace root", []tea.Msg{ReplaceScreenMsg{&fakeScreen{name: "login"}}}, []string{"login"}},
		{
			"replace keeps depth",
			[]tea.Msg{PushScreenMsg{&fakeScreen{name: "quiz"}}, ReplaceScreenMsg{&fakeScreen{name: "results"}}},
			[]string{"dashboard", "results"},
		},
		{
			"reset drops history",
			[]tea.Msg{
				PushScreenMsg{&fakeScreen{name: "analytics"}},
				PushScreenMsg{&fakeScreen{name: "profile"}},
				ResetScreenMsg{&fakeScreen{name: "login"}},
			},
			[]string{"login"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&fakeScreen{name: "dashboard"})
			for _, msg := range tt.msgs {
				r.Update(msg)
			}
			assert.Equal(t, tt.want, titles(r))
			assert.Equal(t, len(tt.want), r.Depth())
			assert.Equal(t, tt.want[len(tt.want)-1], r.View(80, 24))
		})
	}
}

func TestNewScreensAreInitialised(t *testing.T) {
	r := New(&fakeScreen{name: "dashboard"})

	for _, msg := range []tea.Msg{
		PushScreenMsg{&fakeScreen{name: "quiz"}},
		ReplaceScreenMsg{&fakeScreen{name: "results"}},
		ResetScreenMsg{&fakeScreen{name: "login"}},
	} {
		cmd := r.Update(msg)
		require.NotNil(t, cmd)
		assert.Equal(t, initMsg{r.Active().Title()}, cmd())
		assert.Equal(t, 1, r.Active().(*fakeScreen).inits)
	}
}

func TestPopRevealsPreviousStateWithoutInit(t *testing.T) {
	root := &fakeScreen{name: "dashboard"}
	r := New(root)
	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	r.Update(PushScreenMsg{&fakeScreen{name: "quiz"}})
	r.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})

	assert.Nil(t, r.Update(PopScreenMsg{}))
	assert.Same(t, root, r.Active())
	assert.Equal(t, []string{"a"}, root.keys)
	assert.Zero(t, root.inits)
}

func TestEmptyRouter(t *testing.T) {
	r := &Router{}
	assert.Nil(t, r.Active())
	assert.Nil(t, r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}))
	assert.Empty(t, r.View(80, 24))

	r.Replace(&fakeScreen{name: "welcome"})
	assert.Equal(t, []string{"welcome"}, titles(r))
}
