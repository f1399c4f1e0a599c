package catalog

import (
	"context"

	"shelfcore/pkg/domain"
)

// CreateMediaLink stores a new media link.
func (s *Service) CreateMediaLink(ctx context.Context, m domain.MediaLink) (domain.MediaLink, error) {
	var out domain.MediaLink
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateMediaLink(m)
		return err
	})
	return out, err
}

// UpdateMediaLink applies a patch to an existing link.
func (s *Service) UpdateMediaLink(ctx context.Context, id string, patch domain.MediaLinkPatch) (domain.MediaLink, error) {
	var out domain.MediaLink
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdateMediaLink(id, patch)
		return err
	})
	return out, err
}

// DeleteMediaLink removes a link.
func (s *Service) DeleteMediaLink(ctx context.Context, id string) error {
	return s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteMediaLink(id)
	})
}

// ListMediaLinks returns all links in insertion order.
func (s *Service) ListMediaLinks(ctx context.Context) ([]domain.MediaLink, error) {
	var out []domain.MediaLink
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListMediaLinks()
		return nil
	})
	return out, err
}

// SiteConfig resolves the configuration singleton. ok is false when it was
// never written.
func (s *Service) SiteConfig(ctx context.Context) (cfg domain.SiteConfig, ok bool, err error) {
	err = s.view(ctx, func(v domain.TransactionView) error {
		cfg, ok = v.SiteConfig()
		return nil
	})
	return cfg, ok, err
}

// UpdateSiteConfig patches the configuration singleton, creating it when
// missing. Both fields are required, so the first write must supply both.
func (s *Service) UpdateSiteConfig(ctx context.Context, patch domain.SiteConfigPatch) (domain.SiteConfig, error) {
	var out domain.SiteConfig
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		cfg, _ := tx.View().SiteConfig()
		patch.Apply(&cfg)
		var err error
		out, err = tx.SetSiteConfig(cfg)
		return err
	})
	return out, err
}
