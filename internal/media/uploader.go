package media

import (
	"context"
	"io"
)

// Uploader is the media collaborator producing evidence photo references.
// Failures surface as e.ErrEvidenceUploadFailed and never touch ticket
// state; the caller may retry.
//
//go:generate mockgen -source=uploader.go -destination=mocks/mock.go
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
}
