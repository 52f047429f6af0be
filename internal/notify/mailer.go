package notify

import (
	"fmt"
	"strings"

	"github.com/artauction/auctionapi/config"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends plain text notifications over SMTP. Port 587 upgrades the
// connection with STARTTLS; port 465 uses implicit TLS.
type Mailer struct {
	cfg    config.EmailConfig
	sender sender
	pool   *ants.Pool
}

func NewMailer(cfg config.EmailConfig) (*Mailer, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "create mail worker pool")
	}
	return &Mailer{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.SmtpServer, cfg.SmtpPort, cfg.SmtpUser, cfg.SmtpPassword),
		pool:   pool,
	}, nil
}

func (m *Mailer) message(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	from := m.cfg.FromEmail
	if from == "" {
		from = m.cfg.SmtpUser
	}
	msg.SetAddressHeader("From", from, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}

// Send delivers one message and blocks until the SMTP exchange ends.
func (m *Mailer) Send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return errors.New("empty recipient")
	}
	return errors.Wrapf(m.sender.DialAndSend(m.message(to, subject, body)), "send mail to %s", to)
}

// SendAsync queues the message on the worker pool. Delivery failures are
// logged only.
func (m *Mailer) SendAsync(to, subject, body string) error {
	return m.pool.Submit(func() {
		if err := m.Send(to, subject, body); err != nil {
			zap.L().Error("email delivery failed", zap.String("to", to), zap.Error(err))
			return
		}
		zap.L().Info("email sent", zap.String("to", to), zap.String("subject", subject))
	})
}

// OnOrderEvent tells the customer that their order was placed or changed.
func (m *Mailer) OnOrderEvent(evt Event) {
	order, ok := evt.Payload.(dto.OrderDTO)
	if !ok {
		return
	}
	subject, body := m.orderMail(evt.Action, order)
	if err := m.SendAsync(order.CustomerEmail, subject, body); err != nil {
		zap.L().Error("queue order email", zap.Int64("order", order.ID), zap.Error(err))
	}
}

func (m *Mailer) orderMail(action string, o dto.OrderDTO) (subject, body string) {
	verb := "has been updated"
	if action == "created" {
		verb = "has been received"
	}
	subject = fmt.Sprintf("%s: order #%d %s", m.cfg.Subject, o.ID, o.OrderStatus)
	body = fmt.Sprintf("Dear %s,\n\nYour order #%d %s.\nStatus: %s\nItems: %d\nTotal: %s\n\nThank you,\n%s\n",
		o.CustomerName, o.ID, verb, o.OrderStatus, len(o.OrderItems), o.TotalAmount.StringFixed(2), m.cfg.FromName)
	return subject, body
}

func (m *Mailer) Release() {
	m.pool.Release()
}
