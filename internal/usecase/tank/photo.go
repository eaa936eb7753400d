package tank

import (
	"context"
	"errors"
	"io"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/imaging"
	"github.com/BruksfildServices01/fishmaster-api/internal/storage"
)

// UploadPhoto converts the image to WebP, stores it under a fresh key and
// points the tank at it.
func (s *Service) UploadPhoto(ctx context.Context, p auth.Principal, tankID uint, r io.Reader) (string, error) {
	if s.photos == nil {
		return "", ErrPhotosDisabled
	}

	t, err := owned(ctx, s.repo, p, tankID)
	if err != nil {
		return "", err
	}

	body, err := imaging.ToWebP(r)
	if err != nil {
		switch {
		case errors.Is(err, imaging.ErrUnsupportedImage):
			return "", ErrInvalidImage
		case errors.Is(err, imaging.ErrImageTooLarge):
			return "", ErrImageTooLarge
		}
		return "", err
	}

	key := storage.PhotoKey(t.ID)
	if err := s.photos.Put(ctx, key, body, imaging.ContentType); err != nil {
		return "", err
	}

	t.PhotoKey = key
	if err := s.repo.UpdateTank(ctx, t); err != nil {
		return "", err
	}

	s.record(p, audit.ActionPhotoUpload, audit.EntityTank, t.ID, map[string]any{"bytes": len(body)})
	return s.photos.PresignGet(ctx, key)
}

// PhotoURL returns a short-lived download link for the tank photo.
func (s *Service) PhotoURL(ctx context.Context, p auth.Principal, tankID uint) (string, error) {
	if s.photos == nil {
		return "", ErrPhotosDisabled
	}

	t, err := owned(ctx, s.repo, p, tankID)
	if err != nil {
		return "", err
	}
	if t.PhotoKey == "" {
		return "", ErrPhotoNotFound
	}
	return s.photos.PresignGet(ctx, t.PhotoKey)
}
