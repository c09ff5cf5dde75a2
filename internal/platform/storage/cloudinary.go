package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// DefaultUploadTimeout bounds a single upload attempt. A timed-out attempt is
// reported as failed; the user resubmits.
const DefaultUploadTimeout = 30 * time.Second

type CloudinaryStore struct {
	client  *cloudinary.Cloudinary
	timeout time.Duration
}

func NewCloudinary(cloudinaryURL string, timeout time.Duration) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	return &CloudinaryStore{client: client, timeout: timeout}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, req UploadRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resourceType := req.ResourceType
	if resourceType == "" {
		resourceType = "auto"
	}
	resp, err := s.client.Upload.Upload(ctx, req.DataURL, uploader.UploadParams{
		Folder:       req.Folder,
		PublicID:     publicID(req.FileName),
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if resp == nil || resp.SecureURL == "" {
		return "", ErrUploadFailed
	}
	return resp.SecureURL, nil
}

// publicID derives a storage key from the file name, without the extension
// (Cloudinary appends its own based on the detected format).
func publicID(fileName string) string {
	if fileName == "" {
		return ""
	}
	if dot := strings.LastIndex(fileName, "."); dot > 0 {
		fileName = fileName[:dot]
	}
	return strings.ReplaceAll(fileName, " ", "_")
}
