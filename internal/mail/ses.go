package mail

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"letterbot/internal/common/logger"
	"letterbot/internal/common/metrics"
)

// SESAPI is the part of the SES client the sender uses.
type SESAPI interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SESSender struct {
	client SESAPI
	from   string
	log    logger.Logger
}

func NewSESSender(client SESAPI, from string, log logger.Logger) *SESSender {
	return &SESSender{client: client, from: from, log: log}
}

func (s *SESSender) Provider() string { return "ses" }

func (s *SESSender) Send(ctx context.Context, email *Email) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: email.To,
			CcAddresses: email.Cc,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(email.Subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(email.Body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}
	if email.ReplyTo != "" {
		input.ReplyToAddresses = []string{email.ReplyTo}
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		metrics.EmailsFailed.WithLabelValues(s.Provider()).Inc()
		return err
	}

	metrics.EmailsSent.WithLabelValues(s.Provider()).Inc()
	s.log.Info("email sent", map[string]interface{}{
		"provider": s.Provider(),
		"to":       email.To,
	})
	return nil
}
