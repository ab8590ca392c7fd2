package preview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/interndigest/internal/model"
	"github.com/amishk599/interndigest/internal/pipeline"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testResult() pipeline.Result {
	a := model.Posting{Title: "Data Intern", Company: "Acme", Location: "Pune", Source: model.SourceLinkedIn, URL: "https://example.com/a"}
	dup := model.Posting{Title: "data intern", Company: "acme", Location: "Pune", Source: model.SourceIndeed, URL: "https://example.com/b"}
	c := model.Posting{Title: "Web Intern", Company: "Beta", Location: "Remote", Source: model.SourceNaukri, URL: "https://example.com/c"}
	return pipeline.Result{
		Aggregate: []model.Posting{a, dup, c},
		Unique:    2,
		Postings:  []model.Posting{a, c},
	}
}

func sized(m previewModel) previewModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(previewModel)
}

func send(m previewModel, keys ...string) previewModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(previewModel)
	}
	return m
}

func TestPreview_CursorClampsToList(t *testing.T) {
	m := sized(newPreviewModel(testResult()))

	m = send(m, "j", "j", "j", "j")
	if m.leftCursor != 2 {
		t.Errorf("leftCursor = %d, want 2 (last scraped)", m.leftCursor)
	}
	m = send(m, "k", "k", "k", "k")
	if m.leftCursor != 0 {
		t.Errorf("leftCursor = %d, want 0", m.leftCursor)
	}
}

func TestPreview_TabSwitchesPane(t *testing.T) {
	m := sized(newPreviewModel(testResult()))

	m = send(m, "tab", "j", "j")
	if m.activePane != 1 {
		t.Fatalf("activePane = %d, want 1", m.activePane)
	}
	if m.rightCursor != 1 || m.leftCursor != 0 {
		t.Errorf("cursors = left %d right %d, want 0/1", m.leftCursor, m.rightCursor)
	}
}

func TestPreview_DetailShowsDroppedDuplicate(t *testing.T) {
	m := sized(newPreviewModel(testResult()))

	m = send(m, "j", "enter")
	if m.view != viewDetail {
		t.Fatal("expected detail view")
	}
	if m.detail.Source != model.SourceIndeed {
		t.Errorf("detail = %+v, want the Indeed duplicate", m.detail)
	}
	if !strings.Contains(m.renderDetail(), "not in digest") {
		t.Error("expected duplicate to be marked as not in digest")
	}

	m = send(m, "esc")
	if m.view != viewList {
		t.Error("esc should return to the list")
	}
}

func TestPreview_StatusCounts(t *testing.T) {
	m := sized(newPreviewModel(testResult()))
	status := m.statusText()
	for _, want := range []string{"3 scraped", "1 duplicates", "0 over limit", "LinkedIn: 1 | Naukri.com: 1"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
}

func TestRenderPostings_Empty(t *testing.T) {
	if got := renderPostings(nil, 0, true); got != "  (no postings)" {
		t.Errorf("renderPostings(nil) = %q", got)
	}
}
