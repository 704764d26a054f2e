package filestorages

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut_ValidKey(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	validKeys := []string{
		"last_ts_file",
		"logcache/2023-bot_stats_file",
		"reports/2023.json",
		"nested/deep/path/file.txt",
	}

	for _, key := range validKeys {
		t.Run(key, func(t *testing.T) {
			result, err := storage.Put(ctx, key, strings.NewReader("payload"), PutOptions{AllowOverwrite: false})
			require.NoError(t, err, "key %q should be valid", key)
			assert.Equal(t, key, result.FileKey)

			content, err := os.ReadFile(filepath.Join(storage.(*fileStorage).dir, key))
			require.NoError(t, err)
			assert.Equal(t, "payload", string(content))
		})
	}
}

func TestPut_InvalidKey(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../escape", "/abs/path", "a/../../b"} {
		t.Run(key, func(t *testing.T) {
			_, err := storage.Put(ctx, key, strings.NewReader("x"), PutOptions{})
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestPut_Overwrite(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()
	key := "logcache/daily_data_file"

	_, err := storage.Put(ctx, key, strings.NewReader("first"), PutOptions{AllowOverwrite: false})
	require.NoError(t, err)

	_, err = storage.Put(ctx, key, strings.NewReader("second"), PutOptions{AllowOverwrite: false})
	assert.ErrorIs(t, err, ErrFileAlreadyExists)
	assert.Equal(t, "first", readKey(t, storage, key))

	_, err = storage.Put(ctx, key, strings.NewReader("third"), PutOptions{AllowOverwrite: true})
	require.NoError(t, err)
	assert.Equal(t, "third", readKey(t, storage, key))
}

func TestGet_FileNotFound(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	rc, err := storage.Get(context.Background(), "missing.json")
	assert.Nil(t, rc)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestList(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	for _, key := range []string{"logcache/last_ts_file", "logcache/2023-human_stats_file", "logcache/2022-bot_stats_file", "logcache/sub/ignored"} {
		_, err := storage.Put(ctx, key, strings.NewReader("x"), PutOptions{AllowOverwrite: true})
		require.NoError(t, err)
	}
	// leftovers of an interrupted write are not listed
	require.NoError(t, os.WriteFile(filepath.Join(storage.(*fileStorage).dir, "logcache", ".tmp-123"), nil, 0644))

	names, err := storage.List(ctx, "logcache")
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-bot_stats_file", "2023-human_stats_file", "last_ts_file"}, names)
}

func TestList_MissingDir(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	names, err := storage.List(context.Background(), "logcache")
	assert.Nil(t, names)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestNewFileStorage_EmptyRoot(t *testing.T) {
	t.Parallel()

	_, err := NewFileStorage("")
	assert.ErrorIs(t, err, ErrInvalidRootDir)
}

func newTestStorage(t *testing.T) FileStorage {
	tmpDir := t.TempDir()
	storage, err := NewFileStorage(tmpDir)
	require.NoError(t, err)
	return storage
}

func readKey(t *testing.T, storage FileStorage, key string) string {
	rc, err := storage.Get(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}
