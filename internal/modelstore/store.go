// Package modelstore persists frequency models. A model can live in a file,
// a Redis hash or a Badger database; Open picks the backend from a URI.
//
//	/var/lib/hindispell/model.json        file, JSON
//	/var/lib/hindispell/model.txt         file, "word count" lines
//	redis://localhost:6379/0?key=model    Redis hash
//	badger:///var/lib/hindispell/badger   Badger directory
package modelstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/redis/go-redis/v9"

	"hindispell/internal/frequency"
)

// Store loads and saves one frequency model.
type Store interface {
	// Load reads the whole model. Any failure wraps
	// frequency.ErrIndexUnavailable.
	Load(ctx context.Context) (*frequency.Index, error)
	// Save replaces the stored model with counts.
	Save(ctx context.Context, counts map[string]int64) error
	Close() error
}

// DefaultRedisKey is the hash used when a redis URI names no key.
const DefaultRedisKey = "hindi_word_model"

// Open returns the store addressed by uri. logger may be nil.
func Open(uri string, logger *slog.Logger) (Store, error) {
	switch {
	case strings.HasPrefix(uri, "redis://"), strings.HasPrefix(uri, "rediss://"):
		return openRedis(uri)
	case strings.HasPrefix(uri, "badger://"):
		path := strings.TrimPrefix(uri, "badger://")
		if path == "" {
			return nil, fmt.Errorf("badger uri %q has no path", uri)
		}
		return OpenBadger(BadgerConfig{Path: path, Logger: logger})
	case uri == "":
		return nil, fmt.Errorf("empty model uri")
	}
	return NewFileStore(strings.TrimPrefix(uri, "file://")), nil
}

func openRedis(uri string) (*RedisStore, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis uri: %w", err)
	}
	q := u.Query()
	key := q.Get("key")
	if key == "" {
		key = DefaultRedisKey
	}
	q.Del("key")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, fmt.Errorf("parse redis uri: %w", err)
	}
	s := NewRedisStore(redis.NewClient(opts), key)
	s.owned = true
	return s, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, frequency.ErrIndexUnavailable, err)
}
