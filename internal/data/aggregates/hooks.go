package aggregates

import (
	"time"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/observability"
)

// Outcome describes one finished aggregate write.
type Outcome struct {
	Op       string
	Err      error
	Conflict bool
	Retry    bool
	Duration time.Duration
}

// Status is the metric label: "success", the ledger code, or "failure"
// for an uncoded error.
func (o Outcome) Status() string {
	if o.Err == nil {
		return "success"
	}
	if code := domainagg.CodeOf(o.Err); code != "" {
		return string(code)
	}
	return "failure"
}

// Hooks receives every settlement and deposit outcome.
type Hooks interface {
	Observe(Outcome)
}

type noopHooks struct{}

func (noopHooks) Observe(Outcome) {}

type metricsHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks reports outcomes to the prometheus registry.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return metricsHooks{metrics: metrics}
}

func (h metricsHooks) Observe(o Outcome) {
	h.metrics.ObserveAggregateOperation(o.Op, o.Status(), o.Duration)
	if o.Conflict {
		h.metrics.IncAggregateConflict(o.Op)
	}
	if o.Retry {
		h.metrics.IncAggregateRetry(o.Op)
	}
}
