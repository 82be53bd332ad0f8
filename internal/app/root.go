package app

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/logship/internal/config"
	"github.com/oshokin/logship/internal/constants"
	"github.com/oshokin/logship/internal/dispatcher"
	"github.com/oshokin/logship/internal/logger"
	"github.com/oshokin/logship/internal/sender"
)

// shippingStats aggregates counters across all shipped inputs.
type shippingStats struct {
	dispatched atomic.Int64
	failed     atomic.Int64
	skipped    atomic.Int64
	bytesRead  atomic.Int64
}

// ExecuteRootCommand is the entry point for the ship operation.
// It builds the dispatcher, ships every input (a file path or "-" for
// stdin), waits for in-flight deliveries to drain, and prints a summary.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, inputs []string) {
	stats := &shippingStats{}

	d, err := dispatcher.NewDispatcher(cfg, sender.NewHTTPSender(cfg), dispatcher.Hooks{
		OnOutcome: func(outcome dispatcher.Outcome) {
			if !outcome.Delivered {
				stats.failed.Add(1)
			}
		},
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize dispatcher: %v", err)
	}

	logger.Infof(ctx, "Shipping to %s", d.Endpoint())

	for _, input := range inputs {
		if err = shipInput(ctx, d, input, stats); err != nil {
			logger.Errorf(ctx, "Failed to ship '%s': %v", input, err)
		}

		if ctx.Err() != nil {
			break
		}
	}

	d.Wait()
	printShippingSummary(ctx, d, stats)
}

// shipInput ships one NDJSON input: a regular file or stdin.
func shipInput(ctx context.Context, d dispatcher.Dispatcher, input string, stats *shippingStats) error {
	if input == constants.StdinPlaceholder {
		return shipStream(ctx, d, os.Stdin, stats, nil)
	}

	file, err := os.Open(input)
	if err != nil {
		return err
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	bar := newShippingProgressBar(file, input)

	defer finishProgressBar(bar)

	return shipStream(ctx, d, file, stats, bar)
}

// printShippingSummary reports the counters and any retained failures.
func printShippingSummary(ctx context.Context, d dispatcher.Dispatcher, stats *shippingStats) {
	logger.Infof(ctx, "Shipped %d records (%s), %d failed, %d skipped",
		stats.dispatched.Load(),
		humanize.Bytes(uint64(max(stats.bytesRead.Load(), 0))), //nolint:gosec // Negative values are clamped above.
		stats.failed.Load(),
		stats.skipped.Load())

	for _, failure := range d.RecentFailures() {
		logger.WarnKV(ctx, "Delivery failed",
			"dispatch_id", failure.DispatchID,
			"url", failure.URL,
			"status", failure.StatusCode,
			"error", failure.Err)
	}
}
