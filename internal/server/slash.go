package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	stderrors "letterbot/internal/common/errors"
	"letterbot/internal/slack"
)

// handleSlash acknowledges a slash command synchronously and publishes it
// to the fan-out topic for out-of-band execution.
func (s *Server) handleSlash(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, "request is not a valid form-encoded string", false)
		return
	}

	payload := slack.SlashPayload{
		Token:       r.PostForm.Get("token"),
		Command:     r.PostForm.Get("command"),
		Text:        r.PostForm.Get("text"),
		ResponseURL: r.PostForm.Get("response_url"),
		UserID:      r.PostForm.Get("user_id"),
		UserName:    r.PostForm.Get("user_name"),
		ChannelID:   r.PostForm.Get("channel_id"),
	}

	if payload.Token != s.cfg.Slack.VerificationToken {
		s.badRequest(w, "incorrect validation token", false)
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.WithError(err).Error("failed to marshal slash payload", nil)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := s.publisher.PublishMessage(r.Context(), s.cfg.Slack.SlashTopicARN, string(raw)); err != nil {
		s.log.WithError(err).Error("failed to publish slash command", nil)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&slack.Message{
		ResponseType: slack.ResponseTypeInChannel,
		Text:         ":thinking_face: Ok, gimme a minute...",
	})
}

// snsEnvelope is the delivery wrapper of an HTTPS topic subscription.
type snsEnvelope struct {
	Type      string `json:"Type"`
	MessageID string `json:"MessageId"`
	TopicARN  string `json:"TopicArn"`
	Message   string `json:"Message"`
}

// handleSlashProcess receives the fan-out delivery and runs the command.
// The delivery channel has no return path, so the work detaches and every
// failure is reported to the chat platform instead.
func (s *Server) handleSlashProcess(w http.ResponseWriter, r *http.Request) {
	var env snsEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		s.badRequest(w, "invalid notification format", false)
		return
	}

	if env.Type != "Notification" {
		s.log.Info("ignoring non-notification delivery", map[string]interface{}{
			"type": env.Type,
		})
		w.WriteHeader(http.StatusOK)
		return
	}

	var req slack.SlashPayload
	if err := json.Unmarshal([]byte(env.Message), &req); err != nil {
		s.log.WithError(err).Error("bad slash command envelope", nil)
		w.WriteHeader(http.StatusOK)
		return
	}

	w.WriteHeader(http.StatusOK)

	go s.processSlash(context.Background(), &req)
}

func (s *Server) processSlash(ctx context.Context, req *slack.SlashPayload) {
	if s.dispatcher == nil {
		s.slack.RespondError(ctx, req.ResponseURL,
			"This mailbot is not set up for querying (no Athena DB configured)")
		return
	}

	res, err := s.dispatcher.Dispatch(ctx, req.Command, req.Text)
	if err != nil {
		s.log.WithError(err).Error("slash command failed", map[string]interface{}{
			"command": req.Command,
			"text":    req.Text,
		})
		s.slack.RespondError(ctx, req.ResponseURL,
			fmt.Sprintf("Command failed: %s", stderrors.ShortReason(err)))
		return
	}

	msg := &slack.Message{
		ResponseType:    slack.ResponseTypeInChannel,
		ReplaceOriginal: true,
		Text:            res,
	}
	if err := s.slack.Respond(ctx, req.ResponseURL, msg); err != nil {
		s.log.WithError(err).Error("failed to respond to Slack", nil)
	}
}
