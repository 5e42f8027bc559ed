package modelstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"hindispell/internal/frequency"
)

// wordPrefix namespaces model keys inside the database.
var wordPrefix = []byte("w/")

// BadgerConfig holds configuration for a Badger-backed model store.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM. Useful for testing.
	InMemory bool

	// Logger receives Badger's own logging. Nil disables it.
	Logger *slog.Logger
}

// BadgerStore keeps a model in a Badger database, one key per word with the
// count as a big-endian uint64.
type BadgerStore struct {
	db *badger.DB
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenBadger opens (creating if needed) the database described by cfg.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("path is required for persistent database")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load(ctx context.Context) (*frequency.Index, error) {
	const op = "load model from badger"
	counts := make(map[string]int64)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = wordPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			word := string(item.Key()[len(wordPrefix):])
			err := item.Value(func(v []byte) error {
				if len(v) != 8 {
					return fmt.Errorf("count for %q has %d bytes", word, len(v))
				}
				counts[word] = int64(binary.BigEndian.Uint64(v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, unavailable(op, err)
	}
	idx, err := frequency.NewIndex(counts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return idx, nil
}

// Save replaces the stored model with counts in one write batch. Words of
// the previous model that are absent from counts are deleted.
func (s *BadgerStore) Save(ctx context.Context, counts map[string]int64) error {
	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = wordPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			k := it.Item().KeyCopy(nil)
			if _, keep := counts[string(k[len(wordPrefix):])]; !keep {
				stale = append(stale, k)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save model to badger: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, k := range stale {
		if err := wb.Delete(k); err != nil {
			return fmt.Errorf("save model to badger: %w", err)
		}
	}
	for w, c := range counts {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := make([]byte, 0, len(wordPrefix)+len(w))
		key = append(append(key, wordPrefix...), w...)
		val := make([]byte, 8)
		binary.BigEndian.PutUint64(val, uint64(c))
		if err := wb.Set(key, val); err != nil {
			return fmt.Errorf("save model to badger: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("save model to badger: %w", err)
	}
	return nil
}

func (s *BadgerStore) Close() error { return s.db.Close() }
