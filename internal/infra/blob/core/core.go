// Package core defines the photo asset storage abstraction shared by the
// blob backends.
package core

import (
	"context"
	"errors"
	"io"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	// DriverFilesystem is the local filesystem driver (dev).
	DriverFilesystem Driver = "fs"
	// DriverS3 is the S3 / MinIO / Yandex Object Storage compatible driver.
	DriverS3 Driver = "s3"
	// DriverMemory is the in-memory test driver.
	DriverMemory Driver = "memory"
)

// Store uploads and deletes photo assets. Keys are derived internally; the
// public URL is the only handle callers keep, mirroring what the site serves.
type Store interface {
	// Upload stores the asset under a generated key inside folder and
	// returns its public URL.
	Upload(ctx context.Context, folder string, r io.Reader, contentType string) (string, error)
	// Delete removes the asset behind a previously returned public URL.
	// Returns (false, nil) when the URL does not belong to this store or the
	// object is already gone.
	Delete(ctx context.Context, publicURL string) (bool, error)
	// Driver returns the configured backend driver.
	Driver() Driver
}

// ErrNotConfigured is returned when a backend is constructed without the
// parameters it needs to serve uploads.
var ErrNotConfigured = errors.New("blob: storage not configured")

// ExtensionFor maps a MIME content type to a file extension for generated keys.
func ExtensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "jpg"
	}
}
