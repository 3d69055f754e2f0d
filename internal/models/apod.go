package models

import (
	"time"
)

// APOD — снимок дня NASA. После создания запись не меняется,
// уникальный бизнес-ключ — дата.
type APOD struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Explanation string    `gorm:"type:text" json:"explanation"`
	URL         string    `gorm:"type:text" json:"url"`
	HDURL       string    `gorm:"type:text" json:"hdurl,omitempty"`
	MediaType   string    `gorm:"type:varchar(20)" json:"media_type"`
	Copyright   string    `gorm:"type:text" json:"copyright,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
}

// Favorite уникален на пару (user, apod); удаление пользователя
// или APOD каскадно удаляет избранное.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_apod" json:"-"`
	APODID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_apod" json:"-"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	APOD      APOD      `gorm:"constraint:OnDelete:CASCADE" json:"apod"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
