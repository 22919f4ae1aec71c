package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const EventStockDeducted = "StockDeducted"

type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// 在庫引当イベントをkafkaへ同期送信する（失敗は呼び出し側へ返す）
type KafkaPublisher struct {
	w        *kafka.Writer
	producer string
}

func NewKafkaPublisher(brokers []string, topic string, producer string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: 5 * time.Second,
		},
		producer: producer,
	}
}

func (p *KafkaPublisher) PublishStockDeducted(ctx context.Context, ev usecase.StockDeductedEvent) error {
	msg, err := buildMessage(p.producer, uuid.NewString(), ev)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", ev.SerialNumber, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// キーは注文ID（同じ注文のイベント順序を保つ）
func buildMessage(producer string, eventID string, ev usecase.StockDeductedEvent) (kafka.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode payload: %w", err)
	}
	env := Envelope{
		EventID:      eventID,
		EventType:    EventStockDeducted,
		EventVersion: 1,
		OccurredAt:   ev.OccurredAt.UTC(),
		Producer:     producer,
		Payload:      payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode envelope: %w", err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.OrderID, 10)),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(EventStockDeducted)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}, nil
}
