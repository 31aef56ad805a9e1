package models

import (
	"gorm.io/gorm"
)

// Worksite is a geofenced work location: a center coordinate plus a circular
// radius in meters. Check-ins are classified against the radius stored at
// submission time; later edits never rewrite historical check-ins.
type Worksite struct {
	gorm.Model

	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius" gorm:"default:100"` // geofence radius in meters
	Active    bool    `json:"active" gorm:"default:true"`
}
