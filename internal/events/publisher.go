package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/loscheesy/ordering/internal/domain"
	"github.com/segmentio/kafka-go"
)

const EventOrderPlaced = "order.placed"

type eventItem struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderPlacedEvent is the payload written for every delivered order.
type OrderPlacedEvent struct {
	Type        string      `json:"type"`
	OrderNumber string      `json:"order_number"`
	Location    string      `json:"location"`
	Items       []eventItem `json:"items"`
	Total       string      `json:"total"`
	PlacedAt    time.Time   `json:"placed_at"`
}

func NewOrderPlacedEvent(rec domain.OrderRecord) OrderPlacedEvent {
	items := make([]eventItem, len(rec.Lines))
	for i, l := range rec.Lines {
		items[i] = eventItem{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Variant:   l.Variant,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
		}
	}
	return OrderPlacedEvent{
		Type:        EventOrderPlaced,
		OrderNumber: rec.OrderNumber,
		Location:    rec.LocationName,
		Items:       items,
		Total:       rec.Total.StringFixed(2),
		PlacedAt:    rec.CreatedAt.UTC(),
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes order events to Kafka, keyed by location so one location's
// orders stay in sequence on a partition.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(topic string, brokers ...string) *Publisher {
	return &Publisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}}
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, rec domain.OrderRecord) error {
	payload, err := json.Marshal(NewOrderPlacedEvent(rec))
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rec.LocationName),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write order event failed: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
