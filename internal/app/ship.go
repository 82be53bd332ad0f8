package app

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/logship/internal/dispatcher"
	"github.com/oshokin/logship/internal/logger"
)

// maxRecordLineSize bounds a single NDJSON line (1 MB).
const maxRecordLineSize = 1024 * 1024

// shipStream reads NDJSON records from r and dispatches each one.
// Empty lines are ignored; malformed lines are counted as skipped and the
// stream continues. The stream stops early when ctx is canceled.
func shipStream(
	ctx context.Context,
	d dispatcher.Dispatcher,
	r io.Reader,
	stats *shippingStats,
	bar *progressbar.ProgressBar,
) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxRecordLineSize)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Bytes()
		stats.bytesRead.Add(int64(len(line)) + 1)

		if bar != nil {
			_ = bar.Add(len(line) + 1)
		}

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var record dispatcher.Record
		if err := json.Unmarshal(line, &record); err != nil {
			stats.skipped.Add(1)
			logger.Warnf(ctx, "Skipping malformed record: %v", err)

			continue
		}

		d.Dispatch(ctx, record, func() {
			stats.dispatched.Add(1)
		})
	}

	return scanner.Err()
}

// newShippingProgressBar builds a byte-progress bar for a regular file.
// It returns nil for non-regular files and whenever debug logging is on,
// so dumps and the bar never interleave.
func newShippingProgressBar(file *os.File, description string) *progressbar.ProgressBar {
	if logger.IsDebugLevel() {
		return nil
	}

	info, err := file.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}

	return progressbar.DefaultBytes(info.Size(), "shipping "+description)
}

func finishProgressBar(bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}

	_ = bar.Finish()
}
