package catalog

import (
	"context"
	"fmt"
	"io"

	"shelfcore/pkg/domain"
)

// CreateFigure stores a new figure.
func (s *Service) CreateFigure(ctx context.Context, f domain.Figure) (domain.Figure, error) {
	var out domain.Figure
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateFigure(f)
		return err
	})
	return out, err
}

// UpdateFigure applies a patch to an existing figure.
func (s *Service) UpdateFigure(ctx context.Context, id string, patch domain.FigurePatch) (domain.Figure, error) {
	var out domain.Figure
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdateFigure(id, patch)
		return err
	})
	return out, err
}

// DeleteFigure removes a figure.
func (s *Service) DeleteFigure(ctx context.Context, id string) error {
	return s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteFigure(id)
	})
}

// ListFigures returns all figures in insertion order.
func (s *Service) ListFigures(ctx context.Context) ([]domain.Figure, error) {
	var out []domain.Figure
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListFigures()
		return nil
	})
	return out, err
}

// CreatePlant stores a new plant.
func (s *Service) CreatePlant(ctx context.Context, p domain.Plant) (domain.Plant, error) {
	var out domain.Plant
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreatePlant(p)
		return err
	})
	return out, err
}

// UpdatePlant applies a patch to an existing plant.
func (s *Service) UpdatePlant(ctx context.Context, id string, patch domain.PlantPatch) (domain.Plant, error) {
	var out domain.Plant
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdatePlant(id, patch)
		return err
	})
	return out, err
}

// DeletePlant removes a plant and, best effort, its photo assets.
func (s *Service) DeletePlant(ctx context.Context, id string) error {
	var photoURLs []string
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if p, ok := tx.View().FindPlant(id); ok {
			for _, ph := range p.Photos {
				photoURLs = append(photoURLs, ph.URL)
			}
		}
		return tx.DeletePlant(id)
	})
	if err != nil {
		return err
	}
	for _, u := range photoURLs {
		s.discardAsset(ctx, u)
	}
	return nil
}

// ListPlants returns all plants in insertion order.
func (s *Service) ListPlants(ctx context.Context) ([]domain.Plant, error) {
	var out []domain.Plant
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListPlants()
		return nil
	})
	return out, err
}

// GetPlant resolves one plant by id.
func (s *Service) GetPlant(ctx context.Context, id string) (domain.Plant, error) {
	var out domain.Plant
	err := s.view(ctx, func(v domain.TransactionView) error {
		p, ok := v.FindPlant(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityPlant, ID: id}
		}
		out = p
		return nil
	})
	return out, err
}

// AddPlantPhoto uploads a gallery photo and appends it to the plant. date is
// the capture date as shown on the site, notes are optional.
func (s *Service) AddPlantPhoto(ctx context.Context, plantID string, r io.Reader, contentType, date string, notes *string) (domain.Plant, error) {
	if s.assets == nil {
		return domain.Plant{}, fmt.Errorf("photo uploads not configured")
	}
	publicURL, err := s.assets.Upload(ctx, plantFolder, r, contentType)
	if err != nil {
		return domain.Plant{}, fmt.Errorf("upload plant photo: %w", err)
	}
	var out domain.Plant
	err = s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		p, ok := tx.View().FindPlant(plantID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityPlant, ID: plantID}
		}
		photos := append(append([]domain.PlantPhoto{}, p.Photos...), domain.PlantPhoto{URL: publicURL, Date: date, Notes: notes})
		var err error
		out, err = tx.UpdatePlant(plantID, domain.PlantPatch{Photos: domain.Set(photos)})
		return err
	})
	if err != nil {
		s.discardAsset(ctx, publicURL)
		return domain.Plant{}, err
	}
	return out, nil
}

// RemovePlantPhoto drops the gallery entry at index and deletes its asset.
func (s *Service) RemovePlantPhoto(ctx context.Context, plantID string, index int) (domain.Plant, error) {
	var out domain.Plant
	var removedURL string
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		p, ok := tx.View().FindPlant(plantID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityPlant, ID: plantID}
		}
		if index < 0 || index >= len(p.Photos) {
			return domain.ValidationError{Entity: domain.EntityPlant, Field: "photos", Reason: "photo index out of range"}
		}
		removedURL = p.Photos[index].URL
		photos := append([]domain.PlantPhoto{}, p.Photos...)
		photos = append(photos[:index], photos[index+1:]...)
		var err error
		out, err = tx.UpdatePlant(plantID, domain.PlantPatch{Photos: domain.Set(photos)})
		return err
	})
	if err != nil {
		return domain.Plant{}, err
	}
	s.discardAsset(ctx, removedURL)
	return out, nil
}

// CreateProject stores a new project.
func (s *Service) CreateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	var out domain.Project
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateProject(p)
		return err
	})
	return out, err
}

// UpdateProject applies a patch to an existing project.
func (s *Service) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	var out domain.Project
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdateProject(id, patch)
		return err
	})
	return out, err
}

// DeleteProject removes a project.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteProject(id)
	})
}

// ListProjects returns all projects in insertion order.
func (s *Service) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListProjects()
		return nil
	})
	return out, err
}

// CreatePublication stores a new publication.
func (s *Service) CreatePublication(ctx context.Context, p domain.Publication) (domain.Publication, error) {
	var out domain.Publication
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreatePublication(p)
		return err
	})
	return out, err
}

// UpdatePublication applies a patch to an existing publication.
func (s *Service) UpdatePublication(ctx context.Context, id string, patch domain.PublicationPatch) (domain.Publication, error) {
	var out domain.Publication
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdatePublication(id, patch)
		return err
	})
	return out, err
}

// DeletePublication removes a publication.
func (s *Service) DeletePublication(ctx context.Context, id string) error {
	return s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeletePublication(id)
	})
}

// ListPublications returns all publications in insertion order.
func (s *Service) ListPublications(ctx context.Context) ([]domain.Publication, error) {
	var out []domain.Publication
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListPublications()
		return nil
	})
	return out, err
}

// CreateInfographic stores a new infographic.
func (s *Service) CreateInfographic(ctx context.Context, i domain.Infographic) (domain.Infographic, error) {
	var out domain.Infographic
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateInfographic(i)
		return err
	})
	return out, err
}

// UpdateInfographic applies a patch to an existing infographic.
func (s *Service) UpdateInfographic(ctx context.Context, id string, patch domain.InfographicPatch) (domain.Infographic, error) {
	var out domain.Infographic
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdateInfographic(id, patch)
		return err
	})
	return out, err
}

// DeleteInfographic removes an infographic.
func (s *Service) DeleteInfographic(ctx context.Context, id string) error {
	return s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteInfographic(id)
	})
}

// ListInfographics returns all infographics in insertion order.
func (s *Service) ListInfographics(ctx context.Context) ([]domain.Infographic, error) {
	var out []domain.Infographic
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListInfographics()
		return nil
	})
	return out, err
}
