// Package memory implements an in-memory photo asset store for tests.
package memory

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"shelfcore/internal/infra/blob/core"
)

var _ core.Store = (*Store)(nil)

const baseURL = "mem://assets"

// Store keeps uploaded assets in a map keyed by public URL.
type Store struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	idFn    func() string
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		objects: map[string][]byte{},
		types:   map[string]string{},
		idFn:    uuid.NewString,
	}
}

func (s *Store) Driver() core.Driver { return core.DriverMemory }

func (s *Store) Upload(ctx context.Context, folder string, r io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := s.idFn() + "." + core.ExtensionFor(contentType)
	if folder = strings.Trim(folder, "/"); folder != "" {
		key = folder + "/" + key
	}
	publicURL := baseURL + "/" + key
	s.mu.Lock()
	s.objects[publicURL] = data
	s.types[publicURL] = contentType
	s.mu.Unlock()
	return publicURL, nil
}

func (s *Store) Delete(ctx context.Context, publicURL string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[publicURL]; !ok {
		return false, nil
	}
	delete(s.objects, publicURL)
	delete(s.types, publicURL)
	return true, nil
}

// Object returns the stored bytes and content type for a public URL.
func (s *Store) Object(publicURL string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[publicURL]
	if !ok {
		return nil, "", false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, s.types[publicURL], true
}

// Len reports the number of stored assets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
