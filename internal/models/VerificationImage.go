package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationImage links a check-in to a photo in the blob store. The unique
// index on CheckinID backs the one-image-per-check-in invariant so it holds
// under concurrent submissions, not just in application code.
type VerificationImage struct {
	gorm.Model
	UserID     uint     `json:"user_id" gorm:"index"`
	User       User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	WorksiteID uint     `json:"worksite_id" gorm:"index"`
	Worksite   Worksite `json:"worksite,omitempty" gorm:"foreignKey:WorksiteID;constraint:OnDelete:CASCADE;"`
	CheckinID  uint     `json:"checkin_id" gorm:"uniqueIndex"`
	Checkin    Checkin  `json:"checkin,omitempty" gorm:"foreignKey:CheckinID;constraint:OnDelete:CASCADE;"`

	// Image is the storage key into the blob store, never a client path.
	Image     string    `json:"image"`
	Timestamp time.Time `json:"timestamp"`
}
