package stores

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"log-stats/internal/shared/filestorages"
	"log-stats/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSnapshotStore_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewSnapshotStore(newTempFileStorage(t), "stats.json")
	saved := twoYearStats()

	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
	assert.Len(t, loaded.DailyData, 2, "the snapshot keeps the daily rollup")
}

func TestSnapshotStore_Save_PutsJSON(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewSnapshotStore(mockFileStorage, "stats.json")

	ctx := context.Background()
	stats := twoYearStats()
	expectedJSON, err := json.Marshal(stats)
	require.NoError(t, err)

	mockFileStorage.EXPECT().
		Put(ctx, "stats.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: true}).
		DoAndReturn(func(ctx context.Context, key string, r io.Reader, opts filestorages.PutOptions) (*filestorages.PutResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, expectedJSON, data)
			return &filestorages.PutResult{FileKey: key}, nil
		})

	assert.NoError(t, store.Save(ctx, stats))
}

func TestSnapshotStore_Load_NotFound(t *testing.T) {
	t.Parallel()

	stats, err := NewSnapshotStore(newTempFileStorage(t), "missing.json").Load(context.Background())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotStore_Load_Corrupted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "bots people"},
		{name: "unknown key", content: `{"bots_set": []}`},
		{name: "short year pair", content: `{"year_stats": {"2023": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fileStorage := newTempFileStorage(t)
			putFile(t, fileStorage, "stats.json", tt.content)

			stats, err := NewSnapshotStore(fileStorage, "stats.json").Load(context.Background())
			assert.Nil(t, stats)
			assert.ErrorIs(t, err, ErrSnapshotCorrupted)
		})
	}
}

func TestSnapshotStore_Load_GetError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewSnapshotStore(mockFileStorage, "stats.json")

	ctx := context.Background()
	mockFileStorage.EXPECT().Get(ctx, "stats.json").Return(nil, errors.New("permission denied"))

	stats, err := store.Load(ctx)
	assert.Nil(t, stats)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSnapshotNotFound)
	assert.Contains(t, err.Error(), "failed to get snapshot")
}
