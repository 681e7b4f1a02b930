package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/router"
)

func testModel(st *progress.Store) AppModel {
	cat := catalog.New([]catalog.Lesson{
		{ID: "l0", Title: "Micrograd", Description: "d", Kind: catalog.KindVideo, Source: "a"},
		{ID: "l1", Title: "Makemore", Description: "d", Kind: catalog.KindVideo, Source: "b"},
	})
	return New(context.Background(), Options{Catalog: cat, Store: st, SessionID: "test"})
}

func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestQuitKeys(t *testing.T) {
	m := testModel(progress.NewStore())

	if _, cmd := send(m, tea.KeyPressMsg{Code: 'q', Text: "q"}); !isQuit(cmd) {
		t.Error("q should quit from the dashboard")
	}
	if _, cmd := send(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}); !isQuit(cmd) {
		t.Error("ctrl+c should always quit")
	}
}

func TestQuitKeyTypesWhileSearching(t *testing.T) {
	st := progress.NewStore()
	m := testModel(st)
	st.SelectView(progress.ViewCurriculum)

	m, _ = send(m, tea.KeyPressMsg{Code: '/', Text: "/"})
	if _, cmd := send(m, tea.KeyPressMsg{Code: 'q', Text: "q"}); isQuit(cmd) {
		t.Error("q must reach the search input instead of quitting")
	}
}

func TestEscGoesBack(t *testing.T) {
	st := progress.NewStore()
	m := testModel(st)

	if _, cmd := send(m, tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc on the dashboard should do nothing")
	}

	st.SelectLesson("l0")
	_, cmd := send(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected back command")
	}
	if _, ok := cmd().(router.BackMsg); !ok {
		t.Error("esc in the lesson room should go back")
	}
}

func TestViewShowsHeaderAndHints(t *testing.T) {
	st := progress.NewStore()
	st.RecordCompletion("l0", 3)
	m := testModel(st)
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.render()
	for _, want := range []string{"Academy", "Dashboard", "50%", "1 day", "Quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}
