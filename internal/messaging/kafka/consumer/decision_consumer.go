package consumer

import (
	"context"
	"encoding/json"

	"go-portal/internal/events"
	"go-portal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeRequestDecisions fans decision events out into the notification
// feed. Messages that cannot be decoded are committed and dropped;
// transient write failures leave the message uncommitted for redelivery.
func ConsumeRequestDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.request_decisions")
	log.Info("request decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("request decision consumer stopped")
				return
			}
			log.Error("fetch decision message failed", zap.Error(err))
			continue
		}

		var event events.RequestDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode request_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.RecordDecision(ctx, event); err != nil {
			log.Error("record decision notification failed",
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit decision message failed", zap.Error(err))
			continue
		}

		log.Info("decision notification delivered",
			zap.String("request_id", event.RequestID),
			zap.String("request_kind", event.RequestKind),
			zap.String("decision", event.Decision),
		)
	}
}
