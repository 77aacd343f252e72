package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore persists entries in a YAML file readable only by its owner.
// Every call re-reads the file so concurrent CLI invocations see each
// other's writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileDocument struct {
	Storage map[string]string `yaml:"storage"`
}

// NewFile opens (without creating) the store at path.
func NewFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file driver requires a path")
	}
	return &FileStore{path: path}, nil
}

// DefaultFilePath is <user config dir>/domain-console/storage.yaml.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "domain-console", "storage.yaml"), nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := doc.Storage[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Storage[key] = value
	return s.write(doc)
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc.Storage[key]; !ok {
		return nil
	}
	delete(doc.Storage, key)
	return s.write(doc)
}

func (s *FileStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.read()
	return err
}

func (s *FileStore) Close(context.Context) error { return nil }

func (s *FileStore) read() (*fileDocument, error) {
	doc := &fileDocument{}
	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read token store: %w", err)
	default:
		if err := yaml.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("parse token store %s: %w", s.path, err)
		}
	}
	if doc.Storage == nil {
		doc.Storage = make(map[string]string)
	}
	return doc, nil
}

// write replaces the file atomically.
func (s *FileStore) write(doc *fileDocument) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode token store: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".storage-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace token store: %w", err)
	}
	return nil
}
