// Package mail is the delivery gateway. One provider is selected at
// startup; every send is a single attempt, and retries only ever happen as
// fresh reviewer decisions upstream.
package mail

import (
	"context"

	awsclient "letterbot/internal/common/aws"
	"letterbot/internal/common/config"
	stderrors "letterbot/internal/common/errors"
	"letterbot/internal/common/logger"
)

// Email is one outbound message. From is supplied by the provider
// configuration, not the caller.
type Email struct {
	To      []string
	Cc      []string
	ReplyTo string
	Subject string
	Body    string
}

// Sender delivers one email in a single attempt.
type Sender interface {
	Send(ctx context.Context, email *Email) error
	Provider() string
}

// New returns the sender selected by mail.provider.
func New(ctx context.Context, cfg config.MailConfig, awsRegion string, log logger.Logger) (Sender, error) {
	switch cfg.Provider {
	case "", "ses":
		client, err := awsclient.NewSESClient(ctx, awsRegion)
		if err != nil {
			return nil, err
		}
		return NewSESSender(client, cfg.From, log), nil
	case "mailgun":
		return NewMailgunSender(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, cfg.From, log), nil
	default:
		return nil, stderrors.NewInvalidMailProviderError(cfg.Provider)
	}
}
