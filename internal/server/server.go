// Package server exposes the HTTP surface: intake, decision callbacks,
// slash commands, and the SNS delivery endpoint for out-of-band command
// execution.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"letterbot/internal/common/config"
	"letterbot/internal/common/logger"
	"letterbot/internal/letter"
	"letterbot/internal/query"
	"letterbot/internal/slack"
)

// Publisher fans a slash command out for asynchronous execution.
type Publisher interface {
	PublishMessage(ctx context.Context, topicARN, message string) error
}

// SlackGateway is the slice of the chat client the handlers use.
type SlackGateway interface {
	PostMessage(ctx context.Context, msg *slack.Message) error
	Respond(ctx context.Context, responseURL string, msg *slack.Message) error
	RespondError(ctx context.Context, responseURL, reason string)
}

type Server struct {
	cfg        *config.Config
	encoder    *letter.Encoder
	processor  *letter.Processor
	dispatcher *query.Dispatcher // nil when no Athena database is configured
	slack      SlackGateway
	publisher  Publisher
	log        logger.Logger
}

func New(cfg *config.Config, encoder *letter.Encoder, processor *letter.Processor, dispatcher *query.Dispatcher, slackClient SlackGateway, publisher Publisher, log logger.Logger) *Server {
	return &Server{
		cfg:        cfg,
		encoder:    encoder,
		processor:  processor,
		dispatcher: dispatcher,
		slack:      slackClient,
		publisher:  publisher,
		log:        log,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/letters", s.handleIntake)
	r.Post("/interactions", s.handleInteraction)
	r.Post("/slash", s.handleSlash)
	r.Post("/slash/process", s.handleSlashProcess)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Address,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("server listening", map[string]interface{}{
		"address": s.cfg.Server.Address,
	})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// badRequest writes the plain-text diagnostic the intake contract promises.
func (s *Server) badRequest(w http.ResponseWriter, message string, cors bool) {
	s.log.Warn("bad request", map[string]interface{}{
		"reason": message,
	})

	if cors {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Bad request: %s", message)
}
