package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pixil98/go-errors"
)

type Loader[T ValidatingSpec] interface {
	Get(string) (T, bool)
	IDs() []string
}

// FileStore holds every record found under a path. The path may be a
// single json file or a directory walked recursively.
type FileStore[T ValidatingSpec] struct {
	path    string
	records map[string]T

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](path string) (*FileStore[T], error) {
	s := &FileStore[T]{
		path:    path,
		records: map[string]T{},
	}

	err := s.load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *FileStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = map[string]T{}

	return filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		rec, err := s.loadRecord(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}

		err = rec.Validate()
		if err != nil {
			return fmt.Errorf("validating %s: %w", filepath.Base(path), err)
		}

		if _, ok := s.records[rec.ID]; ok {
			return fmt.Errorf("duplicate key detected: %s", rec.ID)
		}

		s.records[rec.ID] = rec.Spec
		return nil
	})
}

func (s *FileStore[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.records[id]
	return val, ok
}

// IDs returns every loaded id in sorted order.
func (s *FileStore[T]) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Apply calls fn for every record in id order and collects every failure.
func Apply[T ValidatingSpec](l Loader[T], fn func(id string, spec T) error) error {
	el := errors.NewErrorList()
	for _, id := range l.IDs() {
		spec, _ := l.Get(id)
		if err := fn(id, spec); err != nil {
			el.Add(fmt.Errorf("%s: %w", id, err))
		}
	}
	return el.Err()
}

func (s *FileStore[T]) loadRecord(path string) (*Record[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	jsonData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	rec := &Record[T]{}
	err = json.Unmarshal(jsonData, rec)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling record: %w", err)
	}

	return rec, nil
}
