package server

import (
	"context"
	"sync"
	"testing"

	"letterbot/internal/common/config"
	"letterbot/internal/common/logger"
	"letterbot/internal/letter"
	"letterbot/internal/mail"
	"letterbot/internal/query"
	"letterbot/internal/slack"
)

// stubGateway records outbound chat traffic for inspection.
type stubGateway struct {
	mu        sync.Mutex
	postErr   error
	posted    []*slack.Message
	responded []*slack.Message
	errors    []string
}

func (g *stubGateway) PostMessage(_ context.Context, msg *slack.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.postErr != nil {
		return g.postErr
	}
	g.posted = append(g.posted, msg)
	return nil
}

func (g *stubGateway) Respond(_ context.Context, _ string, msg *slack.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responded = append(g.responded, msg)
	return nil
}

func (g *stubGateway) RespondError(_ context.Context, _ string, reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errors = append(g.errors, reason)
}

type stubPublisher struct {
	mu       sync.Mutex
	err      error
	topics   []string
	messages []string
}

func (p *stubPublisher) PublishMessage(_ context.Context, topicARN, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topicARN)
	p.messages = append(p.messages, message)
	return nil
}

type stubRegistrar struct{}

func (stubRegistrar) RegisterPerson(context.Context, string, string, string) error { return nil }

type stubMailer struct{ err error }

func (m stubMailer) Send(context.Context, *mail.Email) error { return m.err }
func (stubMailer) Provider() string                          { return "stub" }

type stubRunner struct {
	result *query.ResultSet
	err    error
	query  string
}

func (r *stubRunner) Execute(_ context.Context, queryText string) (*query.ResultSet, error) {
	r.query = queryText
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

const testToken = "sekrit"

func newTestServer(t *testing.T, gateway *stubGateway, publisher *stubPublisher, dispatcher *query.Dispatcher) *Server {
	t.Helper()

	// Decision processing detaches from the request, so loggers bound to
	// the test lifetime are unsafe here.
	log := logger.NewNoOpLogger()
	cfg := &config.Config{}
	cfg.Slack.VerificationToken = testToken
	cfg.Slack.SlashTopicARN = "arn:aws:sns:us-east-1:123456789012:slash-commands"

	renderer, err := letter.NewRenderer("{{.Body}}")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	encoder := letter.NewEncoder(stubRegistrar{}, log)
	processor := letter.NewProcessor(testToken, gateway, stubMailer{}, renderer, nil, log)

	return New(cfg, encoder, processor, dispatcher, gateway, publisher, log)
}
