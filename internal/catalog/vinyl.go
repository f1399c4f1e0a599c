package catalog

import (
	"context"
	"fmt"
	"io"

	"shelfcore/pkg/domain"
)

// CreateVinylRecord stores a new vinyl record.
func (s *Service) CreateVinylRecord(ctx context.Context, v domain.VinylRecord) (domain.VinylRecord, error) {
	var out domain.VinylRecord
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateVinylRecord(v)
		return err
	})
	return out, err
}

// UpdateVinylRecord applies a patch to an existing record.
func (s *Service) UpdateVinylRecord(ctx context.Context, id string, patch domain.VinylRecordPatch) (domain.VinylRecord, error) {
	var out domain.VinylRecord
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdateVinylRecord(id, patch)
		return err
	})
	return out, err
}

// DeleteVinylRecord removes a record and, best effort, its photo asset.
func (s *Service) DeleteVinylRecord(ctx context.Context, id string) error {
	var photoURL string
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if rec, ok := tx.View().FindVinylRecord(id); ok && rec.PhotoURL != nil {
			photoURL = *rec.PhotoURL
		}
		return tx.DeleteVinylRecord(id)
	})
	if err != nil {
		return err
	}
	s.discardAsset(ctx, photoURL)
	return nil
}

// ListVinylRecords returns all records in insertion order.
func (s *Service) ListVinylRecords(ctx context.Context) ([]domain.VinylRecord, error) {
	var out []domain.VinylRecord
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListVinylRecords()
		return nil
	})
	return out, err
}

// GetVinylRecord resolves one record by id.
func (s *Service) GetVinylRecord(ctx context.Context, id string) (domain.VinylRecord, error) {
	var out domain.VinylRecord
	err := s.view(ctx, func(v domain.TransactionView) error {
		rec, ok := v.FindVinylRecord(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityVinylRecord, ID: id}
		}
		out = rec
		return nil
	})
	return out, err
}

// SetVinylPhoto uploads a cover photo and points the record at it, replacing
// any previous asset. The upload happens before the record update, so a
// failed update can leak an orphan object; the previous asset is removed only
// after the record points at the new one.
func (s *Service) SetVinylPhoto(ctx context.Context, id string, r io.Reader, contentType string) (domain.VinylRecord, error) {
	if s.assets == nil {
		return domain.VinylRecord{}, fmt.Errorf("photo uploads not configured")
	}
	newURL, err := s.assets.Upload(ctx, vinylFolder, r, contentType)
	if err != nil {
		return domain.VinylRecord{}, fmt.Errorf("upload vinyl photo: %w", err)
	}
	var out domain.VinylRecord
	var oldURL string
	err = s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if rec, ok := tx.View().FindVinylRecord(id); ok && rec.PhotoURL != nil {
			oldURL = *rec.PhotoURL
		}
		var err error
		out, err = tx.UpdateVinylRecord(id, domain.VinylRecordPatch{PhotoURL: domain.Set(newURL)})
		return err
	})
	if err != nil {
		s.discardAsset(ctx, newURL)
		return domain.VinylRecord{}, err
	}
	if oldURL != newURL {
		s.discardAsset(ctx, oldURL)
	}
	return out, nil
}

// RemoveVinylPhoto clears the record's photo and deletes the asset.
func (s *Service) RemoveVinylPhoto(ctx context.Context, id string) (domain.VinylRecord, error) {
	var out domain.VinylRecord
	var oldURL string
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if rec, ok := tx.View().FindVinylRecord(id); ok && rec.PhotoURL != nil {
			oldURL = *rec.PhotoURL
		}
		var err error
		out, err = tx.UpdateVinylRecord(id, domain.VinylRecordPatch{PhotoURL: domain.Null[string]()})
		return err
	})
	if err != nil {
		return domain.VinylRecord{}, err
	}
	s.discardAsset(ctx, oldURL)
	return out, nil
}

// discardAsset deletes a blob best effort. Records stay consistent even when
// the backend refuses, so failures are only logged.
func (s *Service) discardAsset(ctx context.Context, publicURL string) {
	if publicURL == "" || s.assets == nil {
		return
	}
	if _, err := s.assets.Delete(ctx, publicURL); err != nil {
		s.log.Printf("discard asset %s: %v", publicURL, err)
	}
}
