package notify

import (
	"strings"
	"time"

	"github.com/artauction/auctionapi/config"
	evbus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TopicOrderCreated  = "order:created"
	TopicOrderUpdated  = "order:updated"
	TopicOrderDeleted  = "order:deleted"
	TopicReviewCreated = "review:created"
)

var Topics = []string{TopicOrderCreated, TopicOrderUpdated, TopicOrderDeleted, TopicReviewCreated}

// Event is the envelope delivered to every subscriber.
type Event struct {
	ID         string      `json:"id"`
	Entity     string      `json:"entity"`
	Action     string      `json:"action"`
	EntityID   int64       `json:"entityId"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload,omitempty"`
}

func NewEvent(topic string, entityID int64, payload interface{}) Event {
	entity, action, _ := strings.Cut(topic, ":")
	return Event{
		ID:         uuid.NewString(),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: time.Now(),
		Payload:    payload,
	}
}

// newBus returns an in-process bus with no subscribers.
func newBus() evbus.Bus {
	return evbus.New()
}

// Publisher is what request handlers see of the hub.
type Publisher interface {
	Publish(topic string, entityID int64, payload interface{})
}

// Hub fans domain events out to the mailer and the kafka publisher.
type Hub struct {
	bus    evbus.Bus
	mailer *Mailer
	kafka  *KafkaPublisher
}

var _ Publisher = (*Hub)(nil)

func NewHub(cfg *config.AppConfig) (*Hub, error) {
	h := &Hub{bus: newBus()}
	if cfg.Email.Enabled {
		m, err := NewMailer(cfg.Email)
		if err != nil {
			return nil, err
		}
		h.mailer = m
		for _, topic := range []string{TopicOrderCreated, TopicOrderUpdated} {
			if err := h.bus.Subscribe(topic, m.OnOrderEvent); err != nil {
				return nil, err
			}
		}
		zap.L().Info("email notification enabled", zap.String("smtp", cfg.Email.SmtpServer))
	}
	if cfg.Kafka.Enabled {
		h.kafka = NewKafkaPublisher(cfg.Kafka)
		for _, topic := range Topics {
			if err := h.bus.SubscribeAsync(topic, h.kafka.Handle, false); err != nil {
				return nil, err
			}
		}
		zap.L().Info("kafka event publishing enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	return h, nil
}

func (h *Hub) Subscribe(topic string, fn func(Event)) error {
	return h.bus.Subscribe(topic, fn)
}

func (h *Hub) Publish(topic string, entityID int64, payload interface{}) {
	if h == nil {
		return
	}
	h.bus.Publish(topic, NewEvent(topic, entityID, payload))
}

// Close waits for in-flight async handlers and releases the mailer and
// kafka writer.
func (h *Hub) Close() {
	h.bus.WaitAsync()
	if h.mailer != nil {
		h.mailer.Release()
	}
	if h.kafka != nil {
		if err := h.kafka.Close(); err != nil {
			zap.L().Warn("close kafka writer", zap.Error(err))
		}
	}
}
