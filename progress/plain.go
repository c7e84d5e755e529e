package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/justapithecus/grove/pipeline"
	"github.com/justapithecus/grove/types"
)

// PlainReporter writes one progress line per finished job to w. It is the
// non-TTY fallback for the Bubble Tea view and is safe for concurrent use
// from worker goroutines.
type PlainReporter struct {
	w     io.Writer
	total uint64

	mu sync.Mutex
}

// NewPlainReporter creates a reporter over w for a run of total entries.
func NewPlainReporter(w io.Writer, total int) *PlainReporter {
	return &PlainReporter{w: w, total: uint64(total)}
}

// Observe writes the status line for one finished job.
func (r *PlainReporter) Observe(e pipeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.Outcome.IsFailure() {
		fmt.Fprintf(r.w, "[%d/%d] failed for %s: %s (%d failed)\n",
			e.Completed, r.total, e.Entry.Name, e.Outcome.Message, e.Failed)
		return
	}
	fmt.Fprintf(r.w, "[%d/%d] done with %s\n", e.Completed, r.total, e.Entry.Name)
}

// Summary writes the final summary line.
func (r *PlainReporter) Summary(s types.RunSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "All tasks completed. %d failed.\n", s.Failed)
}
