package letter

import (
	"fmt"
	"html"

	stderrors "letterbot/internal/common/errors"
	"letterbot/internal/slack"
)

// DecodeAttachment reconstructs a Letter from the content attachment of an
// encoded decision message. Slack rewrites raw text on display, so every
// string field is HTML-entity-decoded on the way out. The annotation field
// set is closed; an unknown title means the message was not produced by the
// encoder and decoding fails.
func DecodeAttachment(att slack.Attachment) (*Letter, error) {
	l := &Letter{
		Pretext: html.UnescapeString(att.Pretext),
		Subject: html.UnescapeString(att.Title),
		Author:  html.UnescapeString(att.AuthorName),
		Body:    html.UnescapeString(att.Text),
	}

	seenProjectID := false
	for _, f := range att.Fields {
		switch f.Title {
		case FieldRecipients:
			l.RecipientsRaw = html.UnescapeString(f.Value)
			l.HasRecipients = true
		case FieldRegistered:
			l.Registered = html.UnescapeString(f.Value)
		case FieldProjectID:
			l.ProjectID = html.UnescapeString(f.Value)
			seenProjectID = true
		default:
			return nil, stderrors.NewMessageDecodeError(fmt.Sprintf("unknown message field %q", f.Title))
		}
	}

	// Project ID is always encoded, even when empty. Its absence means the
	// message predates the encoder or was tampered with.
	if !seenProjectID {
		return nil, stderrors.NewMessageDecodeError("message has no Project ID field")
	}

	return l, nil
}
