package testutil

import (
	"errors"
	"testing"

	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
)

func TestHooksRecorderTalliesByOp(t *testing.T) {
	const settle = "ledger.settlement.settle"
	h := &HooksRecorder{}
	h.Observe(aggregates.Outcome{Op: settle})
	h.Observe(aggregates.Outcome{Op: settle, Err: domainagg.ErrAlreadySettled, Conflict: true})
	h.Observe(aggregates.Outcome{Op: settle, Err: errors.New("locked"), Retry: true})
	h.Observe(aggregates.Outcome{Op: "ledger.deposit.credit"})

	counts := h.StatusCounts(settle)
	want := map[string]int{"success": 1, "already_settled": 1, "failure": 1}
	if len(counts) != len(want) {
		t.Fatalf("unexpected status counts: %+v", counts)
	}
	for k, v := range want {
		if counts[k] != v {
			t.Fatalf("status %s: want=%d got=%d", k, v, counts[k])
		}
	}
	if got := h.Conflicts(settle); got != 1 {
		t.Fatalf("conflicts: want=1 got=%d", got)
	}
	if got := len(h.Outcomes()); got != 4 {
		t.Fatalf("outcomes: want=4 got=%d", got)
	}
}
