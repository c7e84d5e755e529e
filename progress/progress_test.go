package progress

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justapithecus/grove/pipeline"
	"github.com/justapithecus/grove/types"
)

func successEvent(name string, completed, failed uint64) pipeline.Event {
	return pipeline.Event{
		Entry:     types.CatalogEntry{Name: name, SourceLocator: "loc-" + name},
		Outcome:   types.Succeeded("/out/lib" + name + ".so"),
		Completed: completed,
		Failed:    failed,
	}
}

func failureEvent(name string, completed, failed uint64) pipeline.Event {
	return pipeline.Event{
		Entry:     types.CatalogEntry{Name: name, SourceLocator: "loc-" + name},
		Outcome:   types.Failed(types.StageFetch, errors.New("remote hung up")),
		Completed: completed,
		Failed:    failed,
	}
}

func TestPlainReporterLines(t *testing.T) {
	var b strings.Builder
	r := NewPlainReporter(&b, 3)

	r.Observe(successEvent("rust", 1, 0))
	r.Observe(failureEvent("cobol", 2, 1))
	r.Summary(types.RunSummary{Total: 3, Completed: 3, Failed: 1})

	out := b.String()
	for _, want := range []string{
		"[1/3] done with rust",
		"[2/3] failed for cobol: remote hung up (1 failed)",
		"All tasks completed. 1 failed.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestModelTracksCounters(t *testing.T) {
	m := New(2)

	next, _ := m.Update(JobMsg{Event: successEvent("rust", 1, 0)})
	m = next.(Model)
	next, _ = m.Update(JobMsg{Event: failureEvent("cobol", 2, 1)})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "2/2 completed") {
		t.Errorf("view missing counter: %s", view)
	}
	if !strings.Contains(view, "1 failed") {
		t.Errorf("view missing failure count: %s", view)
	}
	if !strings.Contains(view, "rust") || !strings.Contains(view, "cobol") {
		t.Errorf("view missing job feed: %s", view)
	}
}

func TestModelDone(t *testing.T) {
	m := New(1)

	next, cmd := m.Update(DoneMsg{Summary: types.RunSummary{Total: 1, Completed: 1, Failed: 0}})
	m = next.(Model)

	if cmd == nil {
		t.Fatal("DoneMsg should quit the program")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("expected tea.Quit, got %T", msg)
	}
	if !strings.Contains(m.View(), "All tasks completed. 0 failed.") {
		t.Errorf("final view missing summary: %s", m.View())
	}
}

func TestModelFeedBounded(t *testing.T) {
	m := New(100)
	for i := range 20 {
		next, _ := m.Update(JobMsg{Event: successEvent("lang", uint64(i+1), 0)})
		m = next.(Model)
	}
	if len(m.feed) > feedSize {
		t.Errorf("feed grew to %d lines, cap is %d", len(m.feed), feedSize)
	}
}
