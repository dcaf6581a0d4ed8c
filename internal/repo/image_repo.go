// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for rating image
// metadata and the database-backed image blobs.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
)

// CreateImage inserts image metadata pointing at an already stored blob.
func CreateImage(ctx context.Context, db *gorm.DB, userName, deviceID, contentType string, size int64, blobRef string) (*domain.RatingImage, error) {
	img := &domain.RatingImage{
		ID:          uuid.NewString(),
		UserName:    userName,
		DeviceID:    deviceID,
		ContentType: contentType,
		Size:        size,
		BlobRef:     blobRef,
		CreatedAt:   time.Now().UTC(),
	}
	return img, db.WithContext(ctx).Create(img).Error
}

// GetImage fetches image metadata by id, or ErrNotFound.
func GetImage(ctx context.Context, db *gorm.DB, id string) (*domain.RatingImage, error) {
	var img domain.RatingImage
	if err := db.WithContext(ctx).Where("id = ?", id).First(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

// ListImages returns all image metadata ordered by user name, then upload time.
func ListImages(ctx context.Context, db *gorm.DB) ([]domain.RatingImage, error) {
	out := []domain.RatingImage{}
	err := db.WithContext(ctx).Order("user_name ASC, created_at ASC, id ASC").Find(&out).Error
	return out, err
}

// CountImages counts images, optionally restricted to one user name.
func CountImages(ctx context.Context, db *gorm.DB, userName string) (int64, error) {
	var n int64
	q := db.WithContext(ctx).Model(&domain.RatingImage{})
	if userName != "" {
		q = q.Where("user_name = ?", userName)
	}
	err := q.Count(&n).Error
	return n, err
}

// DeleteImage removes one image row owned by userName, or returns ErrNotFound.
func DeleteImage(ctx context.Context, db *gorm.DB, userName, id string) error {
	res := db.WithContext(ctx).Where("id = ? AND user_name = ?", id, userName).Delete(&domain.RatingImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllImages removes every image row and returns how many were removed.
func DeleteAllImages(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.RatingImage{})
	return res.RowsAffected, res.Error
}

// PutBlob stores data under a fresh reference and returns it.
func PutBlob(ctx context.Context, db *gorm.DB, data []byte) (string, error) {
	b := &domain.ImageBlob{Ref: uuid.NewString(), Data: data, CreatedAt: time.Now().UTC()}
	if err := db.WithContext(ctx).Create(b).Error; err != nil {
		return "", err
	}
	return b.Ref, nil
}

// GetBlob returns the bytes stored under ref, or ErrNotFound.
func GetBlob(ctx context.Context, db *gorm.DB, ref string) ([]byte, error) {
	var b domain.ImageBlob
	if err := db.WithContext(ctx).Where("ref = ?", ref).First(&b).Error; err != nil {
		return nil, err
	}
	return b.Data, nil
}

// DeleteBlob removes the blob stored under ref. Missing refs are ignored.
func DeleteBlob(ctx context.Context, db *gorm.DB, ref string) error {
	return db.WithContext(ctx).Where("ref = ?", ref).Delete(&domain.ImageBlob{}).Error
}

// DeleteAllBlobs removes every stored blob.
func DeleteAllBlobs(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.ImageBlob{}).Error
}
