package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// eventPublisher sends ledger events keyed by user id so one user's events
// stay ordered within a partition.
type eventPublisher struct {
	writer KafkaWriter
	now    func() time.Time
}

func newEventPublisher(writer KafkaWriter) eventPublisher {
	return eventPublisher{writer: writer, now: time.Now}
}

// publish never fails the caller; errors are logged.
func (p eventPublisher) publish(ctx context.Context, event models.LedgerEvent) {
	if p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "type", event.Type, "user_id", event.UserID)
		return
	}

	event.EventID = uuid.NewString()
	event.Timestamp = p.now().Unix()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal ledger event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish ledger event to Kafka", "event_id", event.EventID, "type", event.Type, "error", err)
		return
	}
	logger.Log.Infow("Ledger event published to Kafka", "event_id", event.EventID, "type", event.Type, "user_id", event.UserID)
}

func creditAppliedEvent(userID string, amount, balance int64, source string) models.LedgerEvent {
	return models.LedgerEvent{
		Type:    models.EventCreditApplied,
		UserID:  userID,
		Amount:  amount,
		Balance: balance,
		Source:  source,
	}
}
