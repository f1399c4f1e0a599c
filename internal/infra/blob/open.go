// Package blob selects a concrete photo asset backend from configuration.
package blob

import (
	"context"
	"fmt"

	"shelfcore/internal/infra/blob/core"
	"shelfcore/internal/infra/blob/fs"
	"shelfcore/internal/infra/blob/memory"
	"shelfcore/internal/infra/blob/s3"
)

// Options carries backend selection and connection parameters.
type Options struct {
	Driver core.Driver

	// driver=fs
	FSRoot    string
	FSBaseURL string

	// driver=s3
	S3 s3.Config
}

// Open constructs the asset store selected by opts. An empty driver defaults
// to s3.
func Open(ctx context.Context, opts Options) (core.Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = core.DriverS3
	}
	switch driver {
	case core.DriverMemory:
		return memory.New(), nil
	case core.DriverFilesystem:
		return fs.New(opts.FSRoot, opts.FSBaseURL)
	case core.DriverS3:
		return s3.New(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", driver)
	}
}
