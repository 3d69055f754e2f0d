package models

import (
	"time"
)

// Asteroid — нормализованный объект из NEO feed.
// LastUpdated проставляется только при upsert и управляет свежестью.
type Asteroid struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	NeoReferenceID    string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"neo_reference_id"`
	Name              string    `gorm:"type:text;not null" json:"name"`
	MaxDiameterMeters float64   `json:"diameter_max_meters"`
	IsHazardous       bool      `json:"is_potentially_hazardous"`
	CloseApproachDate string    `gorm:"type:varchar(10)" json:"close_approach_date"`
	MissDistanceKm    float64   `json:"miss_distance_km"`
	LastUpdated       time.Time `gorm:"index;not null" json:"last_updated"`
}
