package letter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"letterbot/internal/common/logger"
	"letterbot/internal/slack"
)

// Registrar registers an author with the external CRM.
type Registrar interface {
	RegisterPerson(ctx context.Context, firstName, lastName, email string) error
}

// Encoder turns a submission into the chat message that carries its state
// until a reviewer decides.
type Encoder struct {
	registrar Registrar
	log       logger.Logger
	now       func() time.Time
}

func NewEncoder(registrar Registrar, log logger.Logger) *Encoder {
	return &Encoder{
		registrar: registrar,
		log:       log,
		now:       time.Now,
	}
}

// Encode builds the encoded decision message and returns it together with
// the freshly minted correlation id. When the submission asks to join, the
// CRM registration is attempted first and its outcome recorded as an
// annotation field; registration failure never blocks encoding.
func (e *Encoder) Encode(ctx context.Context, sub *Submission) (*slack.Message, string) {
	correlationID := uuid.NewString()
	name, first, last := sub.AuthorNames()

	registered := RegistrationNo
	if sub.Join {
		if err := e.registrar.RegisterPerson(ctx, first, last, sub.Email); err != nil {
			e.log.WithError(err).Error("failed to register person with NationBuilder", nil)
			registered = RegistrationFailed
		} else {
			registered = RegistrationYes
		}
	}

	fields := make([]slack.Field, 0, 3)
	if sub.Recipients != nil {
		fields = append(fields, slack.Field{
			Title: FieldRecipients,
			Value: strings.Join(sub.Recipients, EmailSeparator),
		})
	}
	fields = append(fields,
		slack.Field{Title: FieldRegistered, Value: registered, Short: true},
		slack.Field{Title: FieldProjectID, Value: sub.ProjectID, Short: true},
	)

	msg := &slack.Message{
		Attachments: []slack.Attachment{
			{
				Pretext:    "New submission",
				Title:      sub.Subject,
				AuthorName: fmt.Sprintf("%s <%s>", name, sub.Email),
				Text:       sub.Content,
				Ts:         e.now().Unix(),
				Fields:     fields,
			},
			{
				Fallback:   "Your client does not support approving/rejecting messages",
				CallbackID: "submit",
				Actions: []slack.Action{
					{
						Name:  "approve",
						Text:  "Approve",
						Style: "primary",
						Type:  "button",
						Value: correlationID,
						Confirm: &slack.Confirm{
							Text:        "Are you sure you want to approve this message?",
							OkText:      "Yes",
							DismissText: "Not right now",
						},
					},
					{
						Name:  "reject",
						Text:  "Reject",
						Type:  "button",
						Value: correlationID,
						Confirm: &slack.Confirm{
							Text:        "Are you sure you want to reject this message?",
							OkText:      "Yes",
							DismissText: "Not right now",
						},
					},
				},
			},
		},
	}

	return msg, correlationID
}
