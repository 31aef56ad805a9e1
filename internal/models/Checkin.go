package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckinStatus is the review state of a check-in. A check-in starts pending
// and may move to verified or rejected exactly once; both are terminal.
type CheckinStatus string

const (
	StatusPending  CheckinStatus = "pending"
	StatusVerified CheckinStatus = "verified"
	StatusRejected CheckinStatus = "rejected"
)

func (s CheckinStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a review may move a check-in from s to
// target. Only pending check-ins move, and never back to pending.
func (s CheckinStatus) CanTransitionTo(target CheckinStatus) bool {
	if s != StatusPending {
		return false
	}
	return target == StatusVerified || target == StatusRejected
}

type Checkin struct {
	gorm.Model
	UserID     uint     `json:"user_id" gorm:"index"`
	User       User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	WorksiteID uint     `json:"worksite_id" gorm:"index"`
	Worksite   Worksite `json:"worksite,omitempty" gorm:"foreignKey:WorksiteID;constraint:OnDelete:CASCADE;"`

	// Timestamp is the server-side submission time, never client supplied.
	Timestamp time.Time     `json:"timestamp" gorm:"index"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Status    CheckinStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Notes     string        `json:"notes" gorm:"type:text"`

	// IsOnsite is derived from the geofence evaluation at creation time and
	// is immutable afterward.
	IsOnsite bool `json:"is_onsite"`
}
