package letter

import (
	"context"
	"encoding/json"
	"fmt"
)

const auditTimestampFormat = "2006-01-02 15:04:05"

// Record is the immutable audit entry written for each approved letter.
// Records are write-once; nothing in this system updates or deletes them.
type Record struct {
	ProjectID            string   `json:"projectid"`
	Sender               string   `json:"sender"`
	Recipients           []string `json:"recipients"`
	Subject              string   `json:"subject"`
	Body                 string   `json:"body"`
	ApprovedTimestampUTC string   `json:"approvedTimestampUTC"`
}

// AuditStore persists approval audit records.
type AuditStore interface {
	Put(ctx context.Context, correlationID string, rec *Record) error
}

// ObjectPutter is the storage operation the S3 audit store needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// S3AuditStore writes audit records as JSON objects under the letters/
// prefix, keyed by project id and correlation id.
type S3AuditStore struct {
	client ObjectPutter
	bucket string
}

func NewS3AuditStore(client ObjectPutter, bucket string) *S3AuditStore {
	return &S3AuditStore{client: client, bucket: bucket}
}

func (s *S3AuditStore) Put(ctx context.Context, correlationID string, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	key := AuditKey(rec.ProjectID, correlationID)
	if err := s.client.PutObject(ctx, s.bucket, key, data, "application/json"); err != nil {
		return fmt.Errorf("failed to put audit record %s: %w", key, err)
	}
	return nil
}

// AuditKey builds the storage key for one approval.
func AuditKey(projectID, correlationID string) string {
	return fmt.Sprintf("letters/%s-%s.json", projectID, correlationID)
}
