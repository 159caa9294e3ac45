package letter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"letterbot/internal/common/logger"
)

type mockRegistrar struct {
	mock.Mock
}

func (m *mockRegistrar) RegisterPerson(ctx context.Context, firstName, lastName, email string) error {
	args := m.Called(ctx, firstName, lastName, email)
	return args.Error(0)
}

func TestEncode(t *testing.T) {
	sub := &Submission{
		Subject:    "Save the library",
		Content:    "Dear council, please keep it open.",
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Recipients: []string{"<mailto:council@example.com|Council>", "<mailto:mayor@example.com|Mayor>"},
		ProjectID:  "42",
	}

	t.Run("builds the two-attachment decision message", func(t *testing.T) {
		registrar := new(mockRegistrar)
		enc := NewEncoder(registrar, logger.NewTestLogger(t))

		msg, id := enc.Encode(context.Background(), sub)
		require.NotEmpty(t, id)
		require.Len(t, msg.Attachments, 2)

		content := msg.Attachments[0]
		assert.Equal(t, "New submission", content.Pretext)
		assert.Equal(t, "Save the library", content.Title)
		assert.Equal(t, "Jane Doe <jane@example.com>", content.AuthorName)
		assert.Equal(t, "Dear council, please keep it open.", content.Text)
		assert.NotZero(t, content.Ts)

		require.Len(t, content.Fields, 3)
		assert.Equal(t, FieldRecipients, content.Fields[0].Title)
		assert.Equal(t, "<mailto:council@example.com|Council>, <mailto:mayor@example.com|Mayor>", content.Fields[0].Value)
		assert.Equal(t, FieldRegistered, content.Fields[1].Title)
		assert.Equal(t, RegistrationNo, content.Fields[1].Value)
		assert.Equal(t, FieldProjectID, content.Fields[2].Title)
		assert.Equal(t, "42", content.Fields[2].Value)

		actions := msg.Attachments[1]
		assert.Equal(t, "submit", actions.CallbackID)
		require.Len(t, actions.Actions, 2)
		assert.Equal(t, "approve", actions.Actions[0].Name)
		assert.Equal(t, id, actions.Actions[0].Value)
		require.NotNil(t, actions.Actions[0].Confirm)
		assert.Equal(t, "reject", actions.Actions[1].Name)
		assert.Equal(t, id, actions.Actions[1].Value)

		registrar.AssertNotCalled(t, "RegisterPerson", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("omits the recipients field when none were given", func(t *testing.T) {
		registrar := new(mockRegistrar)
		enc := NewEncoder(registrar, logger.NewTestLogger(t))

		msg, _ := enc.Encode(context.Background(), &Submission{
			Subject: "Hello", Content: "Hi", Name: "Jane Doe",
			Email: "jane@example.com", ProjectID: "42",
		})

		require.Len(t, msg.Attachments[0].Fields, 2)
		assert.Equal(t, FieldRegistered, msg.Attachments[0].Fields[0].Title)
		assert.Equal(t, FieldProjectID, msg.Attachments[0].Fields[1].Title)
	})

	t.Run("records a successful registration", func(t *testing.T) {
		registrar := new(mockRegistrar)
		registrar.On("RegisterPerson", mock.Anything, "Jane", "Doe", "jane@example.com").Return(nil)
		enc := NewEncoder(registrar, logger.NewTestLogger(t))

		joined := *sub
		joined.Join = true
		msg, _ := enc.Encode(context.Background(), &joined)

		assert.Equal(t, RegistrationYes, msg.Attachments[0].Fields[1].Value)
		registrar.AssertExpectations(t)
	})

	t.Run("registration failure is recorded, not fatal", func(t *testing.T) {
		registrar := new(mockRegistrar)
		registrar.On("RegisterPerson", mock.Anything, "Jane", "Doe", "jane@example.com").
			Return(errors.New("api down"))
		enc := NewEncoder(registrar, logger.NewTestLogger(t))

		joined := *sub
		joined.Join = true
		msg, id := enc.Encode(context.Background(), &joined)

		assert.NotEmpty(t, id)
		assert.Equal(t, RegistrationFailed, msg.Attachments[0].Fields[1].Value)
	})

	t.Run("each submission mints a fresh id", func(t *testing.T) {
		registrar := new(mockRegistrar)
		enc := NewEncoder(registrar, logger.NewTestLogger(t))

		_, id1 := enc.Encode(context.Background(), sub)
		_, id2 := enc.Encode(context.Background(), sub)
		assert.NotEqual(t, id1, id2)
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	registrar := new(mockRegistrar)
	enc := NewEncoder(registrar, logger.NewTestLogger(t))

	sub := &Submission{
		Subject:    "Save the library",
		Content:    "Dear council, please keep it open.",
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Recipients: []string{"<mailto:a@b.com|A B>"},
		ProjectID:  "42",
	}

	msg, _ := enc.Encode(context.Background(), sub)
	l, err := DecodeAttachment(msg.Attachments[0])
	require.NoError(t, err)

	assert.Equal(t, "Save the library", l.Subject)
	assert.Equal(t, "Jane Doe <jane@example.com>", l.Author)
	assert.Equal(t, "Dear council, please keep it open.", l.Body)
	assert.True(t, l.HasRecipients)
	assert.Equal(t, "<mailto:a@b.com|A B>", l.RecipientsRaw)
	assert.Equal(t, RegistrationNo, l.Registered)
	assert.Equal(t, "42", l.ProjectID)
}
