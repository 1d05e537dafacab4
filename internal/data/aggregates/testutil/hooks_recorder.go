package testutil

import (
	"sync"

	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
)

// HooksRecorder keeps every aggregate outcome for assertions.
type HooksRecorder struct {
	mu       sync.Mutex
	outcomes []aggregates.Outcome
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) Observe(o aggregates.Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outcomes = append(h.outcomes, o)
}

func (h *HooksRecorder) Outcomes() []aggregates.Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]aggregates.Outcome(nil), h.outcomes...)
}

// StatusCounts tallies statuses recorded for op.
func (h *HooksRecorder) StatusCounts(op string) map[string]int {
	out := map[string]int{}
	for _, o := range h.Outcomes() {
		if o.Op == op {
			out[o.Status()]++
		}
	}
	return out
}

// Conflicts counts outcomes for op that ended on a compare-and-set miss.
func (h *HooksRecorder) Conflicts(op string) int {
	n := 0
	for _, o := range h.Outcomes() {
		if o.Op == op && o.Conflict {
			n++
		}
	}
	return n
}
