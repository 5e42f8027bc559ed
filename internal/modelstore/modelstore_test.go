package modelstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hindispell/internal/frequency"
)

var model = map[string]int64{
	"महत्वपूर्ण": 500,
	"विषय":      300,
	"है":        1000,
}

func roundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, model))
	idx, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model, idx.Counts())

	// A second save replaces, not merges.
	require.NoError(t, s.Save(ctx, map[string]int64{"नया": 1}))
	idx, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"नया": 1}, idx.Counts())
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, name := range []string{"model.json", "model.txt", "nested/dir/model"} {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, NewFileStore(filepath.Join(t.TempDir(), name)))
		})
	}
}

func TestFileStoreFormat(t *testing.T) {
	assert.Equal(t, frequency.FormatJSON, NewFileStore("a/b.JSON").format)
	assert.Equal(t, frequency.FormatText, NewFileStore("a/b.txt").format)
}

func TestFileStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte(`{"विषय": `), 0o600))

	for _, path := range []string{filepath.Join(dir, "missing.json"), empty, corrupt} {
		_, err := NewFileStore(path).Load(context.Background())
		assert.ErrorIsf(t, err, frequency.ErrIndexUnavailable, "path %s", path)
	}
}

func TestFileStoreLoadsOriginalModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hindi_word_model.json")
	data := "{\n    \"भारत\": 12,\n    \"देश\": 7\n}"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	idx, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(19), idx.Total())
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	s, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	roundTrip(t, s)
}

func TestBadgerStoreEmpty(t *testing.T) {
	s, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, frequency.ErrIndexUnavailable)
}

func TestBadgerRequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	s, err := Open("models/hi.json", nil)
	require.NoError(t, err)
	assert.Equal(t, "models/hi.json", s.(*FileStore).Path())

	s, err = Open("file:///tmp/hi.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/hi.txt", s.(*FileStore).Path())

	s, err = Open("redis://localhost:6379/2?key=hi_model", nil)
	require.NoError(t, err)
	rs := s.(*RedisStore)
	assert.Equal(t, "hi_model", rs.Key())
	assert.Equal(t, 2, rs.client.(*redis.Client).Options().DB)
	require.NoError(t, s.Close())

	s, err = Open("redis://localhost:6379", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRedisKey, s.(*RedisStore).Key())
	require.NoError(t, s.Close())

	dir := filepath.Join(t.TempDir(), "badger")
	s, err = Open("badger://"+dir, nil)
	require.NoError(t, err)
	require.IsType(t, &BadgerStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("", nil)
	assert.Error(t, err)
	_, err = Open("badger://", nil)
	assert.Error(t, err)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	key := "modelstore_test_" + t.Name()
	t.Cleanup(func() { client.Del(context.Background(), key) })

	roundTrip(t, NewRedisStore(client, key))
}

func TestRedisStoreSaveEmpty(t *testing.T) {
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "")
	assert.Equal(t, DefaultRedisKey, s.Key())
	assert.Error(t, s.Save(context.Background(), nil))
}
