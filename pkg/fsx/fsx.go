package fsx

import (
	"context"

	"github.com/talenthub/portal/pkg/kernel"
)

// StoredFile is the provider's handle for an uploaded document: a
// stable identifier plus an access URL valid for anyone holding it.
type StoredFile struct {
	ID  kernel.FileID  `json:"id"`
	URL kernel.FileURL `json:"url"`
}

// FileStorage is the contract against the external object-storage
// provider. All calls are unreliable I/O; none retries on its own.
type FileStorage interface {
	// Upload stores data under the resolved folder and grants read
	// access to anyone holding the returned URL. Provider diagnostics
	// (quota, permission, disabled API) stay inspectable in the error.
	Upload(ctx context.Context, data []byte, filename string) (*StoredFile, error)

	// ResolveDownloadURL returns a fresh usable URL for the file, or
	// an empty URL (and nil error) when the provider cannot resolve
	// it, so callers can degrade gracefully.
	ResolveDownloadURL(ctx context.Context, id kernel.FileID) (kernel.FileURL, error)

	// Delete removes the file. An empty identifier is a no-op success.
	// Failures are reported as false, never raised; the caller decides
	// whether a failed remote delete blocks a local update.
	Delete(ctx context.Context, id kernel.FileID) bool
}
