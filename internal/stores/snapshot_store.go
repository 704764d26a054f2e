package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"log-stats/internal/models"
	"log-stats/internal/shared/filestorages"
)

var (
	ErrSnapshotNotFound  = errors.New("snapshot not found")
	ErrSnapshotCorrupted = errors.New("snapshot corrupted")
)

// SnapshotStore keeps the whole LogStats, daily rollup included, as one JSON document.
type SnapshotStore interface {
	Load(ctx context.Context) (*models.LogStats, error)
	Save(ctx context.Context, stats *models.LogStats) error
}

type snapshotStore struct {
	fileStorage filestorages.FileStorage
	key         string
}

// NewSnapshotStore stores the snapshot under key, a file name relative to the storage root.
func NewSnapshotStore(fileStorage filestorages.FileStorage, key string) SnapshotStore {
	return &snapshotStore{fileStorage: fileStorage, key: key}
}

func (s *snapshotStore) Load(ctx context.Context) (*models.LogStats, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, s.key)
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	stats := models.NewLogStats()
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupted, err)
	}
	return stats, nil
}

func (s *snapshotStore) Save(ctx context.Context, stats *models.LogStats) error {
	jsonData, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = s.fileStorage.Put(ctx, s.key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put snapshot: %w", err)
	}
	return nil
}
