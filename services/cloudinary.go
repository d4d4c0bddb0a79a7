package services

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"
)

// Cloudinary folders for service media.
const (
	ImageFolder = "services/images"
	IconFolder  = "services/icons"
)

// DeletionOutcome reports what happened on a blob destroy attempt. The
// public API collapses it to a boolean, but the manager needs to tell a
// confirmed "not deleted" apart from an unreachable host.
type DeletionOutcome int

const (
	Deleted    DeletionOutcome = iota // host confirmed removal
	NotDeleted                        // host answered but did not remove
	HostError                         // call failed or host unreachable
)

type UploadResult struct {
	PublicID string
	URL      string
	Format   string
}

// ImageStore is the blob-store dependency of the ServiceManager.
type ImageStore interface {
	Upload(ctx context.Context, payload, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) DeletionOutcome
	PublicIDFromReference(ref string) (string, bool)
}

// CloudinaryStore talks to Cloudinary through the official SDK.
type CloudinaryStore struct{}

func NewCloudinaryStore() *CloudinaryStore {
	return &CloudinaryStore{}
}

// client builds a fresh SDK client from the environment on every call, so
// rotated credentials take effect without a restart.
func (s *CloudinaryStore) client() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

// Upload sends a base64 image payload to Cloudinary. A data-URL prefix on
// the payload is stripped first. Any host-side failure comes back as an
// UploadError carrying the cause.
func (s *CloudinaryStore) Upload(ctx context.Context, payload, folder string) (*UploadResult, error) {
	cld, err := s.client()
	if err != nil {
		return nil, &UploadError{Cause: err}
	}

	if strings.HasPrefix(payload, "data:") {
		if _, rest, ok := strings.Cut(payload, ","); ok {
			payload = rest
		}
	}

	result, err := cld.Upload.Upload(ctx, "data:image/png;base64,"+payload, uploader.UploadParams{
		Folder:     folder,
		Overwrite:  api.Bool(true),
		Invalidate: api.Bool(true),
	})
	if err != nil {
		logrus.WithError(err).Error("Cloudinary upload error")
		return nil, &UploadError{Cause: err}
	}
	// The SDK reports API-level rejections in the body, not as an error
	if result.Error.Message != "" {
		logrus.WithField("message", result.Error.Message).Error("Cloudinary upload rejected")
		return nil, &UploadError{Cause: errors.New(result.Error.Message)}
	}

	return &UploadResult{
		PublicID: result.PublicID,
		URL:      result.SecureURL,
		Format:   result.Format,
	}, nil
}

// Destroy removes a blob by public ID. It never returns an error: deletion
// is advisory cleanup, and the caller decides what a non-Deleted outcome
// means.
func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string) DeletionOutcome {
	cld, err := s.client()
	if err != nil {
		logrus.WithError(err).WithField("public_id", publicID).Error("Cloudinary client error")
		return HostError
	}

	result, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		logrus.WithError(err).WithField("public_id", publicID).Error("Error deleting image from Cloudinary")
		return HostError
	}
	if result.Result == "ok" {
		logrus.WithField("public_id", publicID).Info("Successfully deleted image")
		return Deleted
	}
	logrus.WithField("result", result.Result).Warn("Failed to delete image")
	return NotDeleted
}

// PublicIDFromReference extracts the public ID from a Cloudinary delivery
// URL or a bare reference. Handles:
//   - https://res.cloudinary.com/demo/image/upload/v123/services/images/abc.jpg
//   - https://res.cloudinary.com/demo/image/upload/abc.jpg
//   - abc.jpg (already a public ID)
//
// Returns ok=false when nothing extractable is found; that means "no known
// blob to act on", never a failure.
func (s *CloudinaryStore) PublicIDFromReference(ref string) (string, bool) {
	if ref == "" || strings.ContainsAny(ref, " \t\n") {
		return "", false
	}

	marker := strings.Index(ref, "/upload/")
	if marker < 0 {
		// Already a bare public ID, drop the extension if any
		id, _, _ := strings.Cut(ref, ".")
		if id == "" {
			return "", false
		}
		return id, true
	}

	parts := strings.Split(ref[marker+len("/upload/"):], "/")
	if len(parts) > 1 && isVersionSegment(parts[0]) {
		parts = parts[1:]
	}
	id, _, _ := strings.Cut(strings.Join(parts, "/"), ".")
	if id == "" {
		return "", false
	}
	return id, true
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
