package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultPresignedURLExpiry is used when a caller passes a non-positive expiry.
const DefaultPresignedURLExpiry = 15 * time.Minute

// backupPrefix groups exported documents in the bucket.
const backupPrefix = "backups/"

var ErrObjectNotFound = errors.New("object not found in storage")

// BackupStorage keeps exported backup documents in object storage.
type BackupStorage interface {
	// PutObject uploads body under objectKey, replacing any existing object.
	PutObject(ctx context.Context, objectKey string, body []byte, contentType string) error

	// GetObject downloads the object. ErrObjectNotFound when it does not exist.
	GetObject(ctx context.Context, objectKey string) ([]byte, error)

	DeleteObject(ctx context.Context, objectKey string) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

// BackupKey names the object of a backup exported at t. Keys sort
// chronologically.
func BackupKey(t time.Time) string {
	return fmt.Sprintf("%sworkouts-%s.json", backupPrefix, t.UTC().Format("20060102T150405Z"))
}

// LatestBackupKey is the fixed key overwritten by every push, so a pull
// without an explicit key always finds the newest backup.
const LatestBackupKey = backupPrefix + "latest.json"
