package server

import (
	"context"
	"io"
	"net/http"

	"letterbot/internal/letter"
)

// handleInteraction receives an approve/reject decision. The caller expects
// an immediate acknowledgement, so the handler verifies, replies 200, and
// completes the transition in a detached goroutine; from then on everything
// is published through the response URL.
func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.badRequest(w, "invalid request format", false)
		return
	}

	ev, err := letter.ParseDecisionEvent(string(body))
	if err != nil {
		s.badRequest(w, "invalid request format", false)
		return
	}

	if err := s.processor.VerifyToken(ev); err != nil {
		s.badRequest(w, "incorrect validation token", false)
		return
	}

	// Respond right away; the outcome is sent later via response_url.
	w.WriteHeader(http.StatusOK)

	go s.processor.Process(context.Background(), ev)
}
