package letter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectPutter struct {
	mock.Mock
}

func (m *mockObjectPutter) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, key, data, contentType)
	return args.Error(0)
}

func TestAuditKey(t *testing.T) {
	assert.Equal(t, "letters/42-abc-123.json", AuditKey("42", "abc-123"))
	assert.Equal(t, "letters/-abc-123.json", AuditKey("", "abc-123"))
}

func TestS3AuditStorePut(t *testing.T) {
	rec := &Record{
		ProjectID:            "42",
		Sender:               "Jane Doe <jane@example.com>",
		Recipients:           []string{"council@example.com"},
		Subject:              "Save the library",
		Body:                 "Dear council, please keep it open.",
		ApprovedTimestampUTC: "2026-09-01 12:00:00",
	}

	t.Run("writes the record under the letters prefix", func(t *testing.T) {
		putter := new(mockObjectPutter)
		putter.On("PutObject", mock.Anything, "audit-bucket", "letters/42-abc.json",
			mock.Anything, "application/json").Return(nil)

		store := NewS3AuditStore(putter, "audit-bucket")
		require.NoError(t, store.Put(context.Background(), "abc", rec))

		data := putter.Calls[0].Arguments.Get(3).([]byte)
		var got Record
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, *rec, got)

		var keys map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &keys))
		assert.Contains(t, keys, "projectid")
		assert.Contains(t, keys, "approvedTimestampUTC")
	})

	t.Run("propagates storage failures", func(t *testing.T) {
		putter := new(mockObjectPutter)
		putter.On("PutObject", mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything).Return(errors.New("access denied"))

		store := NewS3AuditStore(putter, "audit-bucket")
		err := store.Put(context.Background(), "abc", rec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "letters/42-abc.json")
	})
}
