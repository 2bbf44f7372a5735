package router

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lashon-study/lashon/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

// titles lists the stack bottom to top.
func titles(r *Router) string {
	var out []string
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return strings.Join(out, ">")
}

func TestRouterNavigation(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
		want string
	}{
		{"push", []tea.Msg{PushScreenMsg{Screen: &stubScreen{title: "quiz"}}}, "home>quiz"},
		{"pop", []tea.Msg{PushScreenMsg{Screen: &stubScreen{title: "quiz"}}, PopScreenMsg{}}, "home"},
		{"pop at root is a no-op", []tea.Msg{PopScreenMsg{}, PopScreenMsg{}}, "home"},
		{"replace keeps depth", []tea.Msg{
			PushScreenMsg{Screen: &stubScreen{title: "placement"}},
			ReplaceScreenMsg{Screen: &stubScreen{title: "summary"}},
		}, "home>summary"},
		{"replace root", []tea.Msg{ReplaceScreenMsg{Screen: &stubScreen{title: "other"}}}, "other"},
		{"pop to root", []tea.Msg{
			PushScreenMsg{Screen: &stubScreen{title: "games"}},
			PushScreenMsg{Screen: &stubScreen{title: "match"}},
			PopToRootMsg{},
		}, "home"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "home"})
			for _, msg := range tt.msgs {
				r.Update(msg)
			}
			if got := titles(r); got != tt.want {
				t.Errorf("stack = %q, want %q", got, tt.want)
			}
			if r.Depth() != strings.Count(tt.want, ">")+1 {
				t.Errorf("Depth = %d", r.Depth())
			}
		})
	}
}

func TestRouterInitOnPushAndReplace(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	pushed := &stubScreen{title: "dictionary"}
	r.Push(pushed)
	if !pushed.initRan {
		t.Error("Push should run Init")
	}

	replaced := &stubScreen{title: "summary"}
	r.Replace(replaced)
	if !replaced.initRan {
		t.Error("Replace should run Init")
	}
}

func TestRouterForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	top := &stubScreen{title: "today"}
	r := New(home)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if top.updates != 1 || home.updates != 0 {
		t.Errorf("updates: top=%d home=%d, only the active screen should see messages", top.updates, home.updates)
	}
	if got := r.View(80, 24); got != "today" {
		t.Errorf("View = %q", got)
	}
}
