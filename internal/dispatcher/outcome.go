package dispatcher

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Outcome describes the result of one detached delivery attempt.
// Outcomes exist for diagnostics only: the dispatcher never acts on them.
type Outcome struct {
	// DispatchID uniquely identifies the delivery attempt.
	DispatchID string
	// URL is the resolved destination the request was sent to.
	URL string
	// StatusCode is the HTTP status of the response, when one was received.
	StatusCode int
	// Duration is the time the delivery attempt took.
	Duration time.Duration
	// Err is the transport-level or status-level failure, if any.
	Err error
	// Delivered reports whether the endpoint acknowledged the request
	// with a success status.
	Delivered bool
}

// outcomeRecorder retains the most recent failed outcomes, bounded by an
// LRU cache so an unreachable endpoint cannot grow memory without limit.
type outcomeRecorder struct {
	failures *lru.Cache[string, Outcome]
}

func newOutcomeRecorder(size int) (*outcomeRecorder, error) {
	failures, err := lru.New[string, Outcome](size)
	if err != nil {
		return nil, err
	}

	return &outcomeRecorder{failures: failures}, nil
}

// record stores failed outcomes; successful deliveries leave no trace.
func (r *outcomeRecorder) record(outcome Outcome) {
	if outcome.Delivered {
		return
	}

	r.failures.Add(outcome.DispatchID, outcome)
}

// snapshot returns the retained failures, oldest first.
func (r *outcomeRecorder) snapshot() []Outcome {
	return r.failures.Values()
}
