package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"letterbot/internal/common/metrics"
	"letterbot/internal/letter"
)

// handleIntake accepts a new submission, encodes it, and posts the encoded
// decision message to the review channel. The submission itself is not
// persisted anywhere: from here on the chat message is the record.
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/x-www-form-urlencoded"
	}

	var sub *letter.Submission
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.badRequest(w, "request is not valid JSON", true)
			return
		}
		sub = &letter.Submission{}
		if err := json.Unmarshal(body, sub); err != nil {
			s.log.WithError(err).Warn("intake JSON parse failed", nil)
			s.badRequest(w, "request is not valid JSON", true)
			return
		}
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			s.log.WithError(err).Warn("intake form parse failed", nil)
			s.badRequest(w, "request is not a valid form-encoded string", true)
			return
		}
		sub = submissionFromForm(r.PostForm)
	default:
		s.badRequest(w, "unknown content type", true)
		return
	}

	metrics.SubmissionsReceived.WithLabelValues(contentTypeLabel(contentType)).Inc()

	msg, correlationID := s.encoder.Encode(r.Context(), sub)
	if err := s.slack.PostMessage(r.Context(), msg); err != nil {
		s.log.WithError(err).Error("failed to post submission to Slack", nil)
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "failed to submit for review")
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": correlationID})
}

func submissionFromForm(values url.Values) *letter.Submission {
	sub := &letter.Submission{
		Subject:   values.Get("subject"),
		Content:   values.Get("content"),
		Name:      values.Get("name"),
		FirstName: values.Get("first_name"),
		LastName:  values.Get("last_name"),
		Email:     values.Get("email"),
		ProjectID: values.Get("projectId"),
	}
	if recipients, ok := values["recipients"]; ok {
		sub.Recipients = recipients
	}
	switch strings.ToLower(values.Get("join")) {
	case "true", "1", "yes", "on":
		sub.Join = true
	}
	return sub
}

func contentTypeLabel(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}
