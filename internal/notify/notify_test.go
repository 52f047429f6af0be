package notify

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/artauction/auctionapi/config"
	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/dto"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*gomail.Message
	err  error
	done chan struct{}
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.mu.Lock()
	f.sent = append(f.sent, m...)
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	return f.err
}

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testMailer(t *testing.T, s sender) *Mailer {
	t.Helper()
	m, err := NewMailer(config.EmailConfig{
		SmtpServer: "smtp.example.com",
		SmtpPort:   587,
		SmtpUser:   "noreply@example.com",
		FromName:   "Auction Service",
		Subject:    "Auction Notification",
		Workers:    1,
	})
	require.NoError(t, err)
	m.sender = s
	t.Cleanup(m.Release)
	return m
}

func sampleOrder() dto.OrderDTO {
	return dto.OrderDTO{
		ID:            12,
		CustomerName:  "Ada Park",
		CustomerEmail: "ada@example.com",
		OrderStatus:   domain.OrderShipped,
		TotalAmount:   decimal.RequireFromString("99.5"),
		OrderItems:    []dto.OrderItemDTO{{ProductID: 1, Quantity: 1}},
	}
}

func TestNewEvent(t *testing.T) {
	evt := NewEvent(TopicOrderCreated, 7, nil)
	assert.Equal(t, "order", evt.Entity)
	assert.Equal(t, "created", evt.Action)
	assert.Equal(t, int64(7), evt.EntityID)
	assert.Len(t, evt.ID, 36)
	assert.NotEqual(t, evt.ID, NewEvent(TopicOrderCreated, 7, nil).ID)
}

func TestMailerSend(t *testing.T) {
	s := &fakeSender{}
	m := testMailer(t, s)

	require.NoError(t, m.Send("buyer@example.com", "Hello", "body"))
	require.Len(t, s.sent, 1)
	assert.Equal(t, []string{"buyer@example.com"}, s.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Hello"}, s.sent[0].GetHeader("Subject"))
	assert.Contains(t, s.sent[0].GetHeader("From")[0], "noreply@example.com")

	assert.Error(t, m.Send(" ", "Hello", "body"))

	s.err = errors.New("connection refused")
	assert.ErrorContains(t, m.Send("buyer@example.com", "Hello", "body"), "connection refused")
}

func TestMailerOrderMail(t *testing.T) {
	m := testMailer(t, &fakeSender{})
	subject, body := m.orderMail("created", sampleOrder())
	assert.Equal(t, "Auction Notification: order #12 Shipped", subject)
	assert.True(t, strings.HasPrefix(body, "Dear Ada Park,"))
	assert.Contains(t, body, "has been received")
	assert.Contains(t, body, "Total: 99.50")

	_, body = m.orderMail("updated", sampleOrder())
	assert.Contains(t, body, "has been updated")
}

func TestHubDeliversOrderMail(t *testing.T) {
	s := &fakeSender{done: make(chan struct{}, 1)}
	m := testMailer(t, s)

	h := &Hub{bus: newBus()}
	require.NoError(t, h.Subscribe(TopicOrderUpdated, m.OnOrderEvent))

	h.Publish(TopicOrderUpdated, 12, sampleOrder())
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		t.Fatal("mail was not sent")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.sent, 1)
	assert.Equal(t, []string{"ada@example.com"}, s.sent[0].GetHeader("To"))

	// payloads that are not orders are ignored
	m.OnOrderEvent(NewEvent(TopicOrderUpdated, 1, "nope"))
}

func TestKafkaPublisherHandle(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, timeout: time.Second}

	p.Handle(NewEvent(TopicReviewCreated, 3, map[string]int{"rating": 5}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "review-created-3", string(w.msgs[0].Key))

	var decoded Event
	require.NoError(t, jsoniter.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, int64(3), decoded.EntityID)
	assert.Equal(t, "review", decoded.Entity)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewHubDisabled(t *testing.T) {
	cfg := *config.DefaultAppConfig
	h, err := NewHub(&cfg)
	require.NoError(t, err)
	h.Publish(TopicOrderCreated, 1, sampleOrder())
	h.Close()
}
