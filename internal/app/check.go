package app

import (
	"context"
	"time"

	"github.com/oshokin/logship/internal/config"
	"github.com/oshokin/logship/internal/dispatcher"
	"github.com/oshokin/logship/internal/logger"
	"github.com/oshokin/logship/internal/sender"
)

// checkTimeout bounds the wait for the probe's delivery outcome.
const checkTimeout = time.Minute

// ExecuteCheckCommand dispatches a single probe record and reports its
// delivery outcome. Unlike normal shipping, the outcome is surfaced to the
// operator; this is the one place the fire-and-forget contract is bent,
// through the outcome hook, not through the dispatch path.
func ExecuteCheckCommand(ctx context.Context, cfg *config.Config) {
	outcomes := make(chan dispatcher.Outcome, 1)

	d, err := dispatcher.NewDispatcher(cfg, sender.NewHTTPSender(cfg), dispatcher.Hooks{
		OnOutcome: func(outcome dispatcher.Outcome) {
			outcomes <- outcome
		},
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize dispatcher: %v", err)
	}

	logger.Infof(ctx, "Probing %s", d.Endpoint())

	probe := dispatcher.Record{
		"level":     "info",
		"message":   "logship connectivity check",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	d.Dispatch(ctx, probe, nil)

	select {
	case outcome := <-outcomes:
		if !outcome.Delivered {
			logger.Fatalf(ctx, "Probe delivery failed (status %d): %v", outcome.StatusCode, outcome.Err)
		}

		logger.Infof(ctx, "Probe delivered in %s (status %d)", outcome.Duration, outcome.StatusCode)
	case <-time.After(checkTimeout):
		logger.Fatalf(ctx, "Timed out waiting for the probe outcome")
	case <-ctx.Done():
		logger.Fatalf(ctx, "Canceled while waiting for the probe outcome")
	}
}
