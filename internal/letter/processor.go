package letter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	stderrors "letterbot/internal/common/errors"
	"letterbot/internal/common/logger"
	"letterbot/internal/common/metrics"
	"letterbot/internal/mail"
	"letterbot/internal/slack"
)

// Action names carried by the decision buttons.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// payloadPrefix is the fixed form key prepended to the interaction JSON.
const payloadPrefix = "payload="

// ParseDecisionEvent decodes the raw body of an interactive callback. The
// value after the fixed prefix is URL-encoded JSON.
func ParseDecisionEvent(body string) (*slack.InteractionPayload, error) {
	if len(body) < len(payloadPrefix) {
		return nil, stderrors.NewIntakeFormatError("invalid request format")
	}

	decoded, err := url.QueryUnescape(body[len(payloadPrefix):])
	if err != nil {
		return nil, stderrors.NewIntakeFormatError("invalid request format")
	}

	var ev slack.InteractionPayload
	if err := json.Unmarshal([]byte(decoded), &ev); err != nil {
		return nil, stderrors.NewIntakeFormatError("invalid request format")
	}

	if len(ev.Actions) == 0 || len(ev.OriginalMessage.Attachments) == 0 {
		return nil, stderrors.NewIntakeFormatError("invalid request format")
	}

	return &ev, nil
}

// Responder is the slice of the chat client the processor publishes
// outcomes through.
type Responder interface {
	Respond(ctx context.Context, responseURL string, msg *slack.Message) error
	RespondError(ctx context.Context, responseURL, reason string)
}

// Processor drives a decision event to one of its terminal states. The
// caller acknowledges the event synchronously and runs Process detached;
// from then on every outcome, including failure, is published to the chat
// platform rather than returned.
type Processor struct {
	token    string
	slack    Responder
	mailer   mail.Sender
	renderer *Renderer
	audit    AuditStore // nil disables audit logging
	log      logger.Logger
	now      func() time.Time
}

func NewProcessor(token string, responder Responder, mailer mail.Sender, renderer *Renderer, audit AuditStore, log logger.Logger) *Processor {
	return &Processor{
		token:    token,
		slack:    responder,
		mailer:   mailer,
		renderer: renderer,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// VerifyToken checks the shared secret. It must be called before any other
// processing; a mismatch has no side effect and discloses nothing.
func (p *Processor) VerifyToken(ev *slack.InteractionPayload) error {
	if ev.Token != p.token {
		return stderrors.NewVerificationError()
	}
	return nil
}

// Process completes the transition started by the decision event.
func (p *Processor) Process(ctx context.Context, ev *slack.InteractionPayload) {
	action := ev.Actions[0]

	switch action.Name {
	case ActionApprove:
		p.approve(ctx, ev, action.Value)
	case ActionReject:
		p.reject(ctx, ev)
	default:
		p.log.Warn("unknown decision action", map[string]interface{}{
			"action": action.Name,
		})
		p.slack.RespondError(ctx, ev.ResponseURL, fmt.Sprintf("unknown action %q", action.Name))
	}
}

func (p *Processor) approve(ctx context.Context, ev *slack.InteractionPayload, correlationID string) {
	att := ev.OriginalMessage.Attachments[0]

	l, err := DecodeAttachment(att)
	if err != nil {
		p.reportError(ctx, ev, err)
		return
	}

	sendTo := p.resolveRecipients(l)
	p.log.Info("sending letter", map[string]interface{}{
		"to":        sendTo,
		"projectId": l.ProjectID,
	})

	body, err := p.renderer.Render(l)
	if err != nil {
		p.reportError(ctx, ev, err)
		return
	}

	email := &mail.Email{
		To:      sendTo,
		Cc:      []string{l.Author},
		ReplyTo: l.Author,
		Subject: l.Subject,
		Body:    body,
	}
	if err := p.mailer.Send(ctx, email); err != nil {
		p.reportError(ctx, ev, stderrors.NewDeliveryError(err))
		return
	}

	if p.audit != nil {
		rec := &Record{
			ProjectID:            l.ProjectID,
			Sender:               l.Author,
			Recipients:           sendTo,
			Subject:              l.Subject,
			Body:                 body,
			ApprovedTimestampUTC: p.now().UTC().Format(auditTimestampFormat),
		}
		if err := p.audit.Put(ctx, correlationID, rec); err != nil {
			p.reportError(ctx, ev, stderrors.NewAuditWriteError(err))
			return
		}
	} else {
		p.log.Info("audit bucket not configured, skipping audit record", nil)
	}

	metrics.DecisionsProcessed.WithLabelValues("approved").Inc()
	text := fmt.Sprintf(":white_check_mark: Approved by <@%s|%s>", ev.User.ID, ev.User.Name)
	p.publishTerminal(ctx, ev, att, text, slack.ColorGood)
}

func (p *Processor) reject(ctx context.Context, ev *slack.InteractionPayload) {
	att := ev.OriginalMessage.Attachments[0]

	metrics.DecisionsProcessed.WithLabelValues("rejected").Inc()
	text := fmt.Sprintf(":x: Rejected by <@%s|%s>", ev.User.ID, ev.User.Name)
	p.publishTerminal(ctx, ev, att, text, slack.ColorDanger)
}

// resolveRecipients recomputes the send-to list from the Recipients field.
// No field, or the single sentinel entry, means the letter goes back to the
// author.
func (p *Processor) resolveRecipients(l *Letter) []string {
	if !l.HasRecipients {
		return []string{l.Author}
	}

	parts := strings.Split(l.RecipientsRaw, EmailSeparator)
	sendTo := make([]string, 0, len(parts))
	for _, part := range parts {
		sendTo = append(sendTo, slack.ExtractEmailAddress(part))
	}

	if len(sendTo) == 1 && sendTo[0] == RecipientAuthor {
		return []string{l.Author}
	}
	return sendTo
}

// publishTerminal replaces the original message with the decided letter
// plus a status attachment. After this the message carries no actions and
// is immutable.
func (p *Processor) publishTerminal(ctx context.Context, ev *slack.InteractionPayload, att slack.Attachment, text, color string) {
	resp := &slack.Message{
		Attachments: []slack.Attachment{
			att,
			{
				Fallback: text,
				Color:    color,
				Text:     text,
				Ts:       p.now().Unix(),
			},
		},
		ReplaceOriginal: true,
		ResponseType:    slack.ResponseTypeInChannel,
	}
	if err := p.slack.Respond(ctx, ev.ResponseURL, resp); err != nil {
		p.log.WithError(err).Error("failed to respond to Slack", nil)
	}
}

// reportError publishes a failure as an ephemeral message. The original
// message is left untouched so another decision can retry.
func (p *Processor) reportError(ctx context.Context, ev *slack.InteractionPayload, err error) {
	metrics.DecisionsProcessed.WithLabelValues("error_reported").Inc()
	p.log.WithError(err).Error("decision processing failed", nil)
	p.slack.RespondError(ctx, ev.ResponseURL, stderrors.ShortReason(err))
}
