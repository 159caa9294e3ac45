package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letterbot/internal/letter"
)

func postIntake(t *testing.T, srv *Server, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/letters", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleIntakeJSON(t *testing.T) {
	gateway := &stubGateway{}
	srv := newTestServer(t, gateway, &stubPublisher{}, nil)

	body := `{
		"subject": "Save the library",
		"content": "Dear council, please keep it open.",
		"name": "Jane Doe",
		"email": "jane@example.com",
		"recipients": ["<mailto:council@example.com|Council>"],
		"projectId": "42"
	}`
	rec := postIntake(t, srv, "application/json", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])

	require.Len(t, gateway.posted, 1)
	msg := gateway.posted[0]
	require.Len(t, msg.Attachments, 2)
	assert.Equal(t, "Save the library", msg.Attachments[0].Title)
	assert.Equal(t, resp["id"], msg.Attachments[1].Actions[0].Value)
}

func TestHandleIntakeForm(t *testing.T) {
	gateway := &stubGateway{}
	srv := newTestServer(t, gateway, &stubPublisher{}, nil)

	form := url.Values{
		"subject":    {"Save the library"},
		"content":    {"Dear council, please keep it open."},
		"name":       {"Jane Doe"},
		"email":      {"jane@example.com"},
		"recipients": {"<mailto:a@b.com|A>", "<mailto:c@d.com|C>"},
		"projectId":  {"42"},
		"join":       {"true"},
	}
	rec := postIntake(t, srv, "application/x-www-form-urlencoded", form.Encode())

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, gateway.posted, 1)

	fields := gateway.posted[0].Attachments[0].Fields
	require.Len(t, fields, 3)
	assert.Equal(t, "<mailto:a@b.com|A>, <mailto:c@d.com|C>", fields[0].Value)
	assert.Equal(t, letter.RegistrationYes, fields[1].Value)
}

func TestHandleIntakeMissingContentTypeDefaultsToForm(t *testing.T) {
	gateway := &stubGateway{}
	srv := newTestServer(t, gateway, &stubPublisher{}, nil)

	form := url.Values{
		"subject":   {"Hello"},
		"content":   {"Hi"},
		"name":      {"Jane Doe"},
		"email":     {"jane@example.com"},
		"projectId": {"42"},
	}
	rec := postIntake(t, srv, "", form.Encode())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleIntakeBadRequests(t *testing.T) {
	t.Run("malformed JSON", func(t *testing.T) {
		srv := newTestServer(t, &stubGateway{}, &stubPublisher{}, nil)
		rec := postIntake(t, srv, "application/json", "{not json")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Bad request: request is not valid JSON", rec.Body.String())
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("malformed form", func(t *testing.T) {
		srv := newTestServer(t, &stubGateway{}, &stubPublisher{}, nil)
		rec := postIntake(t, srv, "application/x-www-form-urlencoded", "a=%zz")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Bad request: request is not a valid form-encoded string", rec.Body.String())
	})

	t.Run("unknown content type", func(t *testing.T) {
		srv := newTestServer(t, &stubGateway{}, &stubPublisher{}, nil)
		rec := postIntake(t, srv, "text/csv", "a,b,c")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Bad request: unknown content type", rec.Body.String())
	})
}

func TestHandleIntakeSlackFailure(t *testing.T) {
	gateway := &stubGateway{postErr: assert.AnError}
	srv := newTestServer(t, gateway, &stubPublisher{}, nil)

	rec := postIntake(t, srv, "application/json", `{"subject":"s","content":"c","name":"n","email":"e@x.com","projectId":"42"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
