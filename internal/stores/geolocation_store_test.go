package stores

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"log-stats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryGeolocationStore(t *testing.T, now time.Time) *geolocationStore {
	t.Helper()
	store, err := newGeolocationStore(context.Background(), ":memory:", func() time.Time { return now })
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGeolocationStore_InsertGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemoryGeolocationStore(t, time.Date(2023, time.October, 10, 22, 0, 0, 0, time.UTC))

	require.NoError(t, store.Insert(ctx, "10.0.0.1", "Czechia"))

	record, err := store.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, &models.GeolocationRecord{IP: "10.0.0.1", Geolocation: "Czechia", Date: "2023-10-10"}, record)
}

func TestGeolocationStore_Get_NotFound(t *testing.T) {
	t.Parallel()

	record, err := newMemoryGeolocationStore(t, time.Now()).Get(context.Background(), "10.0.0.1")
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrGeolocationNotFound)
}

func TestGeolocationStore_Get_FirstRecordWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemoryGeolocationStore(t, time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Insert(ctx, "10.0.0.1", models.Unknown))
	require.NoError(t, store.Insert(ctx, "10.0.0.1", "Czechia"))

	record, err := store.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.Unknown, record.Geolocation)
}

func TestGeolocationStore_All(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemoryGeolocationStore(t, time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC))

	records, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, store.Insert(ctx, "10.0.0.1", "Czechia"))
	require.NoError(t, store.Insert(ctx, "10.0.0.2", models.Unknown))

	records, err = store.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.GeolocationRecord{
		{IP: "10.0.0.1", Geolocation: "Czechia", Date: "2023-10-10"},
		{IP: "10.0.0.2", Geolocation: models.Unknown, Date: "2023-10-10"},
	}, records)
}

func TestGeolocationStore_ReopenKeepsRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "geoloc.db")

	store, err := NewGeolocationStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, "10.0.0.1", "Czechia"))
	require.NoError(t, store.Close())

	store, err = NewGeolocationStore(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	record, err := store.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "Czechia", record.Geolocation)
	assert.Equal(t, time.Now().Format(models.DateLayout), record.Date)
}
