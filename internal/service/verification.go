package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"worktrack/internal/blobstore"
	"worktrack/internal/models"
)

// VerificationService owns the check-in/photo association: at most one image
// per check-in, image and check-in always belonging to the same user and
// worksite.
type VerificationService struct {
	db *gorm.DB
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{db: db}
}

// Attach associates a stored image with a check-in. A second attach for the
// same check-in fails with ErrImageConflict and leaves the original intact.
func (s *VerificationService) Attach(ctx context.Context, checkin *models.Checkin, userID, worksiteID uint, imageKey string) (*models.VerificationImage, error) {
	return attachImage(s.db.WithContext(ctx), checkin, userID, worksiteID, imageKey)
}

// ResolveURL builds the absolute URL for an image. Without a base URL from
// the caller's request context there is nothing to build from, so the
// result is empty rather than an error.
func (s *VerificationService) ResolveURL(img *models.VerificationImage, baseURL string) string {
	return blobstore.URLFor(baseURL, img.Image)
}

// Recent lists verification images since the given time, newest first.
func (s *VerificationService) Recent(ctx context.Context, since time.Time) ([]models.VerificationImage, error) {
	var images []models.VerificationImage
	err := s.db.WithContext(ctx).
		Where("timestamp >= ?", since).
		Preload("User").
		Preload("Worksite").
		Order("timestamp desc").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing verification images: %v", ErrStorage, err)
	}
	return images, nil
}

// attachImage is shared with CheckinService so the association can be
// created inside the submission transaction.
func attachImage(tx *gorm.DB, checkin *models.Checkin, userID, worksiteID uint, imageKey string) (*models.VerificationImage, error) {
	if checkin == nil || checkin.ID == 0 {
		return nil, fmt.Errorf("%w: image requires a persisted check-in", ErrInvalidPayload)
	}
	if checkin.UserID != userID || checkin.WorksiteID != worksiteID {
		return nil, fmt.Errorf("%w: image user/worksite must match the check-in", ErrInvalidPayload)
	}

	var existing int64
	err := tx.Model(&models.VerificationImage{}).
		Where("checkin_id = ?", checkin.ID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("%w: checking existing image: %v", ErrStorage, err)
	}
	if existing > 0 {
		return nil, ErrImageConflict
	}

	img := &models.VerificationImage{
		UserID:     userID,
		WorksiteID: worksiteID,
		CheckinID:  checkin.ID,
		Image:      imageKey,
		Timestamp:  time.Now(),
	}
	if err := tx.Create(img).Error; err != nil {
		// The unique index on checkin_id catches the race the pre-read
		// cannot: two concurrent attaches for the same check-in.
		if isUniqueViolation(err) {
			return nil, ErrImageConflict
		}
		return nil, fmt.Errorf("%w: creating verification image: %v", ErrStorage, err)
	}
	return img, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
