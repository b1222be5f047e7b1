package workers

import (
	"context"
	"log/slog"
	"time"

	application "ballot/contexts/poll-network/poll-factory/application"
	"ballot/contexts/poll-network/poll-factory/ports"
)

// MessageRelay drains pending outbox messages into the routing substrate.
// It marks a row published only after the substrate accepted it, and stops on
// the first failure so the next cycle reprocesses the remainder in order.
type MessageRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.MessagePublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r MessageRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list failed",
			"event", "factory_relay_list_failed",
			"module", "poll-network/poll-factory",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		if err := r.Publisher.Publish(ctx, row.TargetChain, row.Payload); err != nil {
			logger.Error("message publish failed",
				"event", "factory_relay_publish_failed",
				"module", "poll-network/poll-factory",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"target_chain", row.TargetChain,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("outbox mark published failed",
				"event", "factory_relay_mark_failed",
				"module", "poll-network/poll-factory",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("message relay cycle completed",
		"event", "factory_relay_completed",
		"module", "poll-network/poll-factory",
		"layer", "worker",
		"published_count", len(pending),
	)
	return nil
}
