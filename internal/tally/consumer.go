package tally

import (
	"context"
	"log/slog"

	"attendsync/internal/queue"
)

// Consume applies every attendance.marked message from q to counter until
// ctx is done or the queue closes. Bad messages and counter failures are
// logged and skipped; there is no redelivery.
func Consume(ctx context.Context, q queue.Queue, counter Counter, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	msgs, err := q.Consume(ctx)
	if err != nil {
		return err
	}
	logger.Info("tally consumer started")
	for msg := range msgs {
		if msg.Type != TypeMarked {
			logger.Debug("skipping message", "type", msg.Type)
			continue
		}
		ev, err := Decode(msg)
		if err != nil {
			logger.Warn("dropping malformed event", "error", err)
			continue
		}
		counted, err := counter.Incr(ctx, ev)
		if err != nil {
			logger.Error("tally update failed", "window_id", ev.WindowID, "record_id", ev.RecordID, "error", err)
			continue
		}
		logger.Debug("event tallied", "window_id", ev.WindowID, "record_id", ev.RecordID, "counted", counted)
	}
	logger.Info("tally consumer stopped")
	return ctx.Err()
}
