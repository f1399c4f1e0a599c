// Package catalog is the shared service layer over the persistent store and
// the photo asset store. The HTTP API and the admin bot both operate through
// it, never against the store directly.
package catalog

import (
	"context"

	blobcore "shelfcore/internal/infra/blob/core"
	"shelfcore/pkg/domain"
)

// Logger is the minimal logging surface the service needs. The stdlib
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Asset folders used for uploaded photos.
const (
	vinylFolder = "vinyl"
	plantFolder = "plants"
)

// Service wraps a persistent store with typed catalog operations. Assets may
// be nil when photo uploads are not needed (the API server reads only).
type Service struct {
	store  domain.PersistentStore
	assets blobcore.Store
	log    Logger
}

// New constructs a Service. A nil logger disables logging.
func New(store domain.PersistentStore, assets blobcore.Store, log Logger) *Service {
	if log == nil {
		log = nopLogger{}
	}
	return &Service{store: store, assets: assets, log: log}
}

// view runs fn against a read-only snapshot.
func (s *Service) view(ctx context.Context, fn func(domain.TransactionView) error) error {
	return s.store.ViewState(ctx, fn)
}
