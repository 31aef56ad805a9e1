package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"worktrack/internal/models"
)

// activeWindow is the trailing period used for the on-site/off-site
// employee counts and the verification rate.
const activeWindow = 8 * time.Hour

// DashboardStats is the caller-facing stats document. Field names are part
// of the API contract and stay stable across calls.
type DashboardStats struct {
	ActiveEmployees  int64   `json:"activeEmployees"`
	OffSiteEmployees int64   `json:"offSiteEmployees"`
	TotalEmployees   int64   `json:"totalEmployees"`
	TotalWorksites   int64   `json:"totalWorksites"`
	CheckInsToday    int64   `json:"checkInsToday"`
	VerificationRate float64 `json:"verificationRate"`
}

// DashboardService computes point-in-time operational statistics with
// read-only scans. Nothing is cached; every call reflects the store as of
// now. A user with both an on-site and an off-site check-in in the window
// appears in both counts.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

func (s *DashboardService) Stats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	activeSince := now.Add(-activeWindow)

	var stats DashboardStats

	err := db.Model(&models.Checkin{}).
		Where("timestamp >= ? AND is_onsite = ?", activeSince, true).
		Distinct("user_id").
		Count(&stats.ActiveEmployees).Error
	if err != nil {
		return nil, fmt.Errorf("%w: counting active employees: %v", ErrStorage, err)
	}

	err = db.Model(&models.Checkin{}).
		Where("timestamp >= ? AND is_onsite = ?", activeSince, false).
		Distinct("user_id").
		Count(&stats.OffSiteEmployees).Error
	if err != nil {
		return nil, fmt.Errorf("%w: counting off-site employees: %v", ErrStorage, err)
	}

	err = db.Model(&models.User{}).
		Where("role = ? AND active = ?", models.RoleEmployee, true).
		Count(&stats.TotalEmployees).Error
	if err != nil {
		return nil, fmt.Errorf("%w: counting employees: %v", ErrStorage, err)
	}

	err = db.Model(&models.Worksite{}).
		Where("active = ?", true).
		Count(&stats.TotalWorksites).Error
	if err != nil {
		return nil, fmt.Errorf("%w: counting worksites: %v", ErrStorage, err)
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	err = db.Model(&models.Checkin{}).
		Where("timestamp >= ?", midnight).
		Count(&stats.CheckInsToday).Error
	if err != nil {
		return nil, fmt.Errorf("%w: counting today's check-ins: %v", ErrStorage, err)
	}

	var inWindow, verified int64
	err = db.Model(&models.Checkin{}).
		Where("timestamp >= ?", activeSince).
		Count(&inWindow).Error
	if err != nil {
		return nil, fmt.Errorf("%w: counting windowed check-ins: %v", ErrStorage, err)
	}
	if inWindow > 0 {
		err = db.Model(&models.Checkin{}).
			Where("timestamp >= ? AND status = ?", activeSince, models.StatusVerified).
			Count(&verified).Error
		if err != nil {
			return nil, fmt.Errorf("%w: counting verified check-ins: %v", ErrStorage, err)
		}
		rate := float64(verified) / float64(inWindow) * 100
		stats.VerificationRate = math.Round(rate*10) / 10
	}

	return &stats, nil
}
