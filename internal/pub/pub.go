package pub

import (
	"context"
	"encoding/json"
	"time"

	"cleverbank/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TransactionEvent is the message emitted after a balance mutation commits.
type TransactionEvent struct {
	EventType       string    `json:"event_type"`
	TransactionID   int64     `json:"transaction_id"`
	TransactionType string    `json:"transaction_type"`
	SupplierAccount string    `json:"supplier_account,omitempty"`
	ConsumerAccount string    `json:"consumer_account,omitempty"`
	Amount          string    `json:"amount"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// TransactionEventPublisher writes committed ledger entries to Kafka.
// Publishing is best effort: a broker outage never fails the mutation
// that already committed.
type TransactionEventPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewTransactionEventPublisher(brokers []string, topic string, log *zap.Logger) *TransactionEventPublisher {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	return &TransactionEventPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		},
		log: log,
	}
}

// PublishCompleted emits a transaction.completed event for a committed
// ledger entry. Safe to call on a nil publisher.
func (p *TransactionEventPublisher) PublishCompleted(ctx context.Context, txn *domain.Transaction) {
	if p == nil {
		return
	}

	event := TransactionEvent{
		EventType:       "transaction.completed",
		TransactionID:   txn.ID,
		TransactionType: string(txn.Type),
		Amount:          txn.Amount.String(),
		OccurredAt:      txn.CreatedAt,
	}
	if txn.SupplierID != nil {
		event.SupplierAccount = *txn.SupplierID
	}
	if txn.ConsumerID != nil {
		event.ConsumerAccount = *txn.ConsumerID
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to marshal transaction event", zap.Error(err))
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(string(txn.Type)),
		Value: payload,
	})
	if err != nil {
		p.log.Warn("failed to publish transaction event",
			zap.Int64("transaction_id", txn.ID),
			zap.Error(err))
	}
}

func (p *TransactionEventPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
