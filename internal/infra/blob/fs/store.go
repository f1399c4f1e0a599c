// Package fs implements photo asset storage on the local filesystem, for
// development setups where the site serves assets from a static directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"shelfcore/internal/infra/blob/core"
)

var _ core.Store = (*Store)(nil)

// Store writes assets under a root directory and maps them to public URLs by
// joining a base URL with the relative key.
type Store struct {
	root    string
	baseURL string
	idFn    func() string
}

// New returns a filesystem-backed store rooted at root, creating the
// directory if needed. baseURL is the public prefix under which the root is
// served.
func New(root, baseURL string) (*Store, error) {
	if root == "" {
		root = "./blobdata"
	}
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base url required", core.ErrNotConfigured)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root, baseURL: strings.TrimRight(baseURL, "/"), idFn: uuid.NewString}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// sanitizeFolder forbids path traversal and absolute segments.
func sanitizeFolder(folder string) (string, error) {
	clean := path.Clean(strings.Trim(folder, "/"))
	if clean == "." {
		return "", nil
	}
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid folder %q", folder)
	}
	return clean, nil
}

func (s *Store) Upload(ctx context.Context, folder string, r io.Reader, contentType string) (string, error) {
	dir, err := sanitizeFolder(folder)
	if err != nil {
		return "", err
	}
	key := s.idFn() + "." + core.ExtensionFor(contentType)
	if dir != "" {
		key = dir + "/" + key
	}
	dataPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the file behind publicURL. URLs outside the configured base
// are ignored rather than treated as errors so stale records from another
// backend cannot fail a cleanup pass.
func (s *Store) Delete(ctx context.Context, publicURL string) (bool, error) {
	key, ok := s.keyFromURL(publicURL)
	if !ok {
		return false, nil
	}
	dataPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.Remove(dataPath); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) keyFromURL(publicURL string) (string, bool) {
	if !strings.HasPrefix(publicURL, s.baseURL+"/") {
		return "", false
	}
	key := strings.TrimPrefix(publicURL, s.baseURL+"/")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}
