package models

import (
	"time"
)

// Launch — предстоящий запуск из Launch Library.
// ExternalID — стабильный UUID апстрима: перенос запуска обновляет
// запись, а не создает дубликат по (name, net).
type Launch struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	ExternalID  string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Net         time.Time `gorm:"index;not null" json:"net"`
	Status      string    `gorm:"type:varchar(50)" json:"status"`
	Mission     string    `gorm:"type:text" json:"mission,omitempty"`
	Rocket      string    `gorm:"type:text" json:"rocket"`
	Pad         string    `gorm:"type:text" json:"pad"`
	Agency      string    `gorm:"type:text" json:"agency"`
	LastUpdated time.Time `gorm:"index;not null" json:"last_updated"`
}
