package models

import (
	"time"
)

// MarsWeatherSol — сводка погоды InSight за один сол.
type MarsWeatherSol struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Sol           int       `gorm:"uniqueIndex;not null" json:"sol"`
	AvgTemp       float64   `json:"avg_temp"`
	MinTemp       float64   `json:"min_temp"`
	MaxTemp       float64   `json:"max_temp"`
	AvgWindSpeed  float64   `json:"avg_wind_speed"`
	MaxWindSpeed  float64   `json:"max_wind_speed"`
	AvgPressure   float64   `json:"avg_pressure"`
	WindDirection string    `gorm:"type:varchar(10)" json:"wind_direction"`
	Season        string    `gorm:"type:varchar(20)" json:"season"`
	FirstUTC      time.Time `json:"first_utc"`
	LastUTC       time.Time `json:"last_utc"`
	LastUpdated   time.Time `gorm:"index;not null" json:"last_updated"`
}
