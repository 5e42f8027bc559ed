package modelstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"

	"hindispell/internal/frequency"
)

// FileStore keeps a model in a single file. Files ending in .json hold the
// JSON object format, anything else the text format.
type FileStore struct {
	path   string
	format frequency.Format
}

func NewFileStore(path string) *FileStore {
	format := frequency.FormatText
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = frequency.FormatJSON
	}
	return &FileStore{path: path, format: format}
}

func (s *FileStore) Path() string { return s.path }

// Load maps the file read-only and parses it in place. Parsed words are
// copied out, so the mapping is released before Load returns.
func (s *FileStore) Load(ctx context.Context) (*frequency.Index, error) {
	op := "load model " + s.path
	f, err := os.Open(s.path)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, unavailable(op, err)
	}
	if fi.Size() == 0 {
		return nil, unavailable(op, errors.New("empty file"))
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, unavailable(op, fmt.Errorf("mmap: %w", err))
	}
	defer m.Unmap()

	if err := ctx.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	idx, err := frequency.Parse(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return idx, nil
}

// Save writes counts to a temporary file next to the target and renames it
// into place.
func (s *FileStore) Save(ctx context.Context, counts map[string]int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create model directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := frequency.Encode(tmp, counts, s.format); err != nil {
		tmp.Close()
		return fmt.Errorf("write model %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write model %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace model %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
