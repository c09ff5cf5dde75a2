package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrUploadFailed covers a rejected, failed, or timed-out push to remote
// storage. Callers abort the surrounding save; nothing retries automatically.
var ErrUploadFailed = errors.New("document upload failed")

type UploadRequest struct {
	// DataURL is the file content as a data: URL.
	DataURL      string
	Folder       string
	FileName     string
	ResourceType string
}

type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (string, error)
}

// Disabled stands in when no upload backend is configured. Every upload is
// rejected, so saves that need a fresh document fail cleanly.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, req UploadRequest) (string, error) {
	return "", fmt.Errorf("%w: no upload backend configured", ErrUploadFailed)
}
