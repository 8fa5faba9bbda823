package service

import (
	"context"
	"encoding/json"
	"fmt"

	"alcyxob/workout-tracker/internal/storage"

	log "github.com/sirupsen/logrus"
)

const backupContentType = "application/json"

// PushBackup uploads the current export under a timestamped key and under
// storage.LatestBackupKey. It returns the timestamped key.
func (s *Store) PushBackup(ctx context.Context, backups storage.BackupStorage) (string, error) {
	doc := s.Export()
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}

	key := storage.BackupKey(doc.ExportDate)
	for _, k := range []string{key, storage.LatestBackupKey} {
		if err := backups.PutObject(ctx, k, body, backupContentType); err != nil {
			return "", err
		}
	}
	log.Infof("backup pushed to %s", key)
	return key, nil
}

// PullBackup downloads the backup at key (the latest one when key is empty)
// and imports it. Nothing changes when the download or parsing fails.
func (s *Store) PullBackup(ctx context.Context, backups storage.BackupStorage, key string) error {
	if key == "" {
		key = storage.LatestBackupKey
	}
	body, err := backups.GetObject(ctx, key)
	if err != nil {
		return fmt.Errorf("pull backup %s: %w", key, err)
	}
	return s.Import(ctx, body)
}
