package curriculum

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/router"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Lesson{
		{ID: "l0", Title: "Micrograd", Kind: catalog.KindVideo, Source: "a", Tags: []string{"Backprop"}},
		{ID: "l1", Title: "Software 2.0", Kind: catalog.KindArticle, Source: "https://example.com/sw2", Tags: []string{"essay"}},
		{ID: "l2", Title: "Makemore", Kind: catalog.KindVideo, Source: "b", Tags: []string{"bigram"}},
	})
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func typeText(c *CurriculumScreen, s string) {
	for _, r := range s {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func ids(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Lesson.ID
	}
	return out
}

func TestSearchFiltersLive(t *testing.T) {
	c := New(progress.NewStore(), testCatalog())

	c.Update(press("/"))
	if !c.CapturingInput() {
		t.Fatal("expected search to capture input after /")
	}
	typeText(c, "BACK")

	got := ids(c.Entries())
	if len(got) != 1 || got[0] != "l0" {
		t.Errorf("expected [l0] for tag search, got %v", got)
	}

	c.Update(press("esc"))
	if c.CapturingInput() {
		t.Error("esc should blur the search")
	}
	if len(c.Entries()) != 3 {
		t.Errorf("esc should clear the search, got %v", ids(c.Entries()))
	}
}

func TestFilterCycle(t *testing.T) {
	c := New(progress.NewStore(), testCatalog())

	c.Update(press("f"))
	if got := ids(c.Entries()); len(got) != 2 || got[0] != "l0" || got[1] != "l2" {
		t.Errorf("expected videos only, got %v", got)
	}
	c.Update(press("f"))
	if got := ids(c.Entries()); len(got) != 1 || got[0] != "l1" {
		t.Errorf("expected articles only, got %v", got)
	}
	c.Update(press("f"))
	if len(c.Entries()) != 3 {
		t.Error("expected all lessons after full cycle")
	}
}

func TestOpenRespectsCatalogPosition(t *testing.T) {
	st := progress.NewStore()
	c := New(st, testCatalog())

	// Videos filter: l0 at filtered index 0, l2 at filtered index 1.
	c.Update(press("f"))
	c.Update(press("down"))
	if _, cmd := c.Update(press("enter")); cmd != nil {
		t.Error("l2 is locked until l1 is completed")
	}

	st.RecordCompletion("l0", 3)
	st.RecordCompletion("l1", 2)
	_, cmd := c.Update(press("enter"))
	if cmd == nil {
		t.Fatal("expected l2 to open once l1 is completed")
	}
	if msg, ok := cmd().(router.OpenLessonMsg); !ok || msg.LessonID != "l2" {
		t.Errorf("expected OpenLessonMsg{l2}, got %#v", msg)
	}
}

func TestEmptyResults(t *testing.T) {
	c := New(progress.NewStore(), testCatalog())
	c.Update(press("/"))
	typeText(c, "zzz")

	if _, cmd := c.Update(press("enter")); cmd != nil {
		t.Error("enter in search should only blur")
	}
	if _, cmd := c.Update(press("enter")); cmd != nil {
		t.Error("nothing to open with no results")
	}
	if !strings.Contains(c.View(100, 30), "No lessons found") {
		t.Error("expected empty-state message")
	}
}

func TestTabNavigatesToDashboard(t *testing.T) {
	c := New(progress.NewStore(), testCatalog())
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if msg, ok := cmd().(router.NavigateMsg); !ok || msg.View != progress.ViewDashboard {
		t.Errorf("expected NavigateMsg{dashboard}, got %#v", msg)
	}
}
