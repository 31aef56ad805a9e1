package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"worktrack/internal/blobstore"
	"worktrack/internal/geofence"
	"worktrack/internal/models"
)

// CheckinService records attendance check-ins. A submission resolves the
// worksite, classifies the reported coordinate against its geofence, and
// persists the check-in together with its optional verification photo in a
// single transaction: either everything lands or nothing does.
type CheckinService struct {
	db    *gorm.DB
	blobs blobstore.Store
}

func NewCheckinService(db *gorm.DB, blobs blobstore.Store) *CheckinService {
	return &CheckinService{db: db, blobs: blobs}
}

// CheckinSubmission is the caller-facing shape of a check-in request.
// Photo is an optional base64-encoded image, with or without a
// "data:<mime>;base64," prefix.
type CheckinSubmission struct {
	WorksiteID uint
	Latitude   float64
	Longitude  float64
	Notes      string
	Photo      string
}

func (s *CheckinService) Record(ctx context.Context, userID uint, sub CheckinSubmission) (*models.Checkin, error) {
	if sub.Latitude < -90 || sub.Latitude > 90 || sub.Longitude < -180 || sub.Longitude > 180 {
		return nil, fmt.Errorf("%w: coordinate out of range", ErrInvalidPayload)
	}

	var site models.Worksite
	err := s.db.WithContext(ctx).
		Where("id = ? AND active = ?", sub.WorksiteID, true).
		First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorksiteNotFound
		}
		return nil, fmt.Errorf("%w: loading worksite: %v", ErrStorage, err)
	}

	// Decode before any write so a malformed photo can never leave a
	// check-in behind that silently lost its intended image.
	var photo []byte
	if sub.Photo != "" {
		photo, err = decodePhoto(sub.Photo)
		if err != nil {
			return nil, err
		}
	}

	distance, onsite := geofence.Evaluate(
		sub.Latitude, sub.Longitude,
		site.Latitude, site.Longitude,
		float64(site.Radius),
	)

	checkin := &models.Checkin{
		UserID:     userID,
		WorksiteID: site.ID,
		Timestamp:  time.Now(),
		Latitude:   sub.Latitude,
		Longitude:  sub.Longitude,
		Status:     models.StatusPending,
		Notes:      sub.Notes,
		IsOnsite:   onsite,
	}

	var blobKey string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(checkin).Error; err != nil {
			return fmt.Errorf("%w: creating check-in: %v", ErrStorage, err)
		}
		if photo == nil {
			return nil
		}

		// Random key: two submissions by the same user in the same
		// second must not collide.
		key := fmt.Sprintf("verification_%d_%s.jpg", userID, uuid.NewString())
		if err := s.blobs.Save(ctx, key, photo); err != nil {
			return fmt.Errorf("%w: storing photo: %v", ErrStorage, err)
		}
		blobKey = key

		if _, err := attachImage(tx, checkin, userID, site.ID, key); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if blobKey != "" {
			// The transaction rolled back; the written blob is now
			// unreferenced. Removal is best effort.
			if derr := s.blobs.Delete(ctx, blobKey); derr != nil {
				logrus.WithError(derr).WithField("key", blobKey).
					Warn("could not remove orphaned verification image blob")
			}
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"worksite_id": site.ID,
		"distance_m":  distance,
		"is_onsite":   onsite,
	}).Debug("check-in recorded")

	return checkin, nil
}

// UpdateStatus applies a review decision. Only pending check-ins move, and
// only to verified or rejected.
func (s *CheckinService) UpdateStatus(ctx context.Context, checkinID uint, target models.CheckinStatus) (*models.Checkin, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidPayload, target)
	}

	var checkin models.Checkin
	if err := s.db.WithContext(ctx).First(&checkin, checkinID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckinNotFound
		}
		return nil, fmt.Errorf("%w: loading check-in: %v", ErrStorage, err)
	}

	if !checkin.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, checkin.Status, target)
	}

	if err := s.db.WithContext(ctx).Model(&checkin).Update("status", target).Error; err != nil {
		return nil, fmt.Errorf("%w: updating status: %v", ErrStorage, err)
	}
	return &checkin, nil
}

// Recent lists check-ins since the given time, newest first, with user and
// worksite details attached for the review console.
func (s *CheckinService) Recent(ctx context.Context, since time.Time) ([]models.Checkin, error) {
	var checkins []models.Checkin
	err := s.db.WithContext(ctx).
		Where("timestamp >= ?", since).
		Preload("User").
		Preload("Worksite").
		Order("timestamp desc").
		Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing recent check-ins: %v", ErrStorage, err)
	}
	return checkins, nil
}

// ForUser lists a user's own check-in history, newest first.
func (s *CheckinService) ForUser(ctx context.Context, userID uint, limit int) ([]models.Checkin, error) {
	var checkins []models.Checkin
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Worksite").
		Order("timestamp desc").
		Limit(limit).
		Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing check-ins: %v", ErrStorage, err)
	}
	return checkins, nil
}

// decodePhoto strips an optional data-URL prefix and base64-decodes the
// payload. The base64 alphabet never contains a comma, so splitting on the
// first comma is safe.
func decodePhoto(payload string) ([]byte, error) {
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: photo is not valid base64", ErrInvalidPayload)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: photo payload is empty", ErrInvalidPayload)
	}
	return data, nil
}
