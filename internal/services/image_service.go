// Package services – ImageService
//
// ImageService keeps the rating-image gallery: end users upload screenshots
// under a user name, the admin lists them grouped per user, counts,
// downloads and deletes them. Image bytes go to a BlobStore; only metadata
// lives in rating_images. Uploads are sniffed with mimetype and must be an
// image/* type.
package services

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/repo"
)

// BlobStore is an opaque put/get-by-reference object store.
type BlobStore interface {
	Put(ctx context.Context, data []byte) (ref string, err error)
	Get(ctx context.Context, ref string) ([]byte, error)
	Delete(ctx context.Context, ref string) error
	DeleteAll(ctx context.Context) error
}

// DBBlobStore stores blobs in the image_blobs table.
type DBBlobStore struct {
	DB *gorm.DB
}

// Put implements BlobStore.
func (b DBBlobStore) Put(ctx context.Context, data []byte) (string, error) {
	return repo.PutBlob(ctx, b.DB, data)
}

// Get implements BlobStore.
func (b DBBlobStore) Get(ctx context.Context, ref string) ([]byte, error) {
	return repo.GetBlob(ctx, b.DB, ref)
}

// Delete implements BlobStore.
func (b DBBlobStore) Delete(ctx context.Context, ref string) error {
	return repo.DeleteBlob(ctx, b.DB, ref)
}

// DeleteAll implements BlobStore.
func (b DBBlobStore) DeleteAll(ctx context.Context) error {
	return repo.DeleteAllBlobs(ctx, b.DB)
}

// ImageGroup is the admin gallery view of one user's uploads.
type ImageGroup struct {
	UserName string               `json:"user_name"`
	Images   []domain.RatingImage `json:"images"`
}

// ImageService manages rating images.
type ImageService struct {
	DB    *gorm.DB
	Blobs BlobStore

	// AccessCode is the admin secret required for gallery management.
	AccessCode string
	// MaxBytes caps a single upload.
	MaxBytes int64
}

// Upload validates and stores one image for userName.
func (s *ImageService) Upload(ctx context.Context, deviceID, userName string, data []byte) (*domain.RatingImage, error) {
	ctx, span := otel.Tracer("services/ImageService").Start(ctx, "Upload",
		trace.WithAttributes(
			attribute.String("user.name", userName),
			attribute.Int("size", len(data)),
		),
	)
	defer span.End()

	user, err := cleanID(userName)
	if err != nil {
		return nil, err
	}
	device, err := cleanOptionalID(deviceID)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrUnsupportedImage
	}
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return nil, ErrImageTooLarge
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, ErrUnsupportedImage
	}

	ref, err := s.Blobs.Put(ctx, data)
	if err != nil {
		return nil, err
	}
	img, err := repo.CreateImage(ctx, s.DB, user, device, mt.String(), int64(len(data)), ref)
	if err != nil {
		if derr := s.Blobs.Delete(ctx, ref); derr != nil {
			log.Warn().Err(derr).Str("ref", ref).Msg("orphaned image blob")
		}
		return nil, err
	}
	return img, nil
}

// ListGrouped returns every image grouped by user name (ascending).
func (s *ImageService) ListGrouped(ctx context.Context, code string) ([]ImageGroup, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return nil, err
	}
	imgs, err := repo.ListImages(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	out := []ImageGroup{}
	for _, img := range imgs {
		if n := len(out); n == 0 || out[n-1].UserName != img.UserName {
			out = append(out, ImageGroup{UserName: img.UserName})
		}
		g := &out[len(out)-1]
		g.Images = append(g.Images, img)
	}
	return out, nil
}

// CountForUser returns the number of images uploaded under userName.
func (s *ImageService) CountForUser(ctx context.Context, code, userName string) (int64, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return 0, err
	}
	user, err := cleanID(userName)
	if err != nil {
		return 0, err
	}
	return repo.CountImages(ctx, s.DB, user)
}

// TotalCount returns the number of stored images.
func (s *ImageService) TotalCount(ctx context.Context, code string) (int64, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return 0, err
	}
	return repo.CountImages(ctx, s.DB, "")
}

// Remove deletes one image owned by userName.
func (s *ImageService) Remove(ctx context.Context, code, userName, id string) error {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return err
	}
	img, err := repo.GetImage(ctx, s.DB, strings.TrimSpace(id))
	if err != nil {
		if isNotFound(err) {
			return ErrImageNotFound
		}
		return err
	}
	if err := repo.DeleteImage(ctx, s.DB, strings.TrimSpace(userName), img.ID); err != nil {
		if isNotFound(err) {
			return ErrImageNotFound
		}
		return err
	}
	if err := s.Blobs.Delete(ctx, img.BlobRef); err != nil {
		log.Warn().Err(err).Str("ref", img.BlobRef).Msg("delete image blob")
	}
	return nil
}

// RemoveAll deletes every image and blob, returning the number of images.
func (s *ImageService) RemoveAll(ctx context.Context, code string) (int64, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return 0, err
	}
	n, err := repo.DeleteAllImages(ctx, s.DB)
	if err != nil {
		return 0, err
	}
	if err := s.Blobs.DeleteAll(ctx); err != nil {
		return n, err
	}
	return n, nil
}

// Content returns the bytes and content type of one image.
func (s *ImageService) Content(ctx context.Context, code, id string) ([]byte, string, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return nil, "", err
	}
	img, err := repo.GetImage(ctx, s.DB, strings.TrimSpace(id))
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrImageNotFound
		}
		return nil, "", err
	}
	data, err := s.Blobs.Get(ctx, img.BlobRef)
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrImageNotFound
		}
		return nil, "", err
	}
	return data, img.ContentType, nil
}
