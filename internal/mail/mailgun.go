package mail

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"

	"letterbot/internal/common/logger"
	"letterbot/internal/common/metrics"
)

type MailgunSender struct {
	mg   mailgun.Mailgun
	from string
	log  logger.Logger
}

func NewMailgunSender(domain, apiKey, from string, log logger.Logger) *MailgunSender {
	return &MailgunSender{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
		log:  log,
	}
}

func (m *MailgunSender) Provider() string { return "mailgun" }

func (m *MailgunSender) Send(ctx context.Context, email *Email) error {
	msg := m.mg.NewMessage(m.from, email.Subject, email.Body, email.To...)
	for _, cc := range email.Cc {
		msg.AddCC(cc)
	}
	if email.ReplyTo != "" {
		msg.SetReplyTo(email.ReplyTo)
	}

	if _, _, err := m.mg.Send(ctx, msg); err != nil {
		metrics.EmailsFailed.WithLabelValues(m.Provider()).Inc()
		return err
	}

	metrics.EmailsSent.WithLabelValues(m.Provider()).Inc()
	m.log.Info("email sent", map[string]interface{}{
		"provider": m.Provider(),
		"to":       email.To,
	})
	return nil
}
