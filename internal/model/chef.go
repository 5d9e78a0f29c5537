package model

import "time"

// Chef — серверная модель пользователя (повара).
type Chef struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	// SearchKey — имя и логин в нижнем регистре, см. SearchKey()
	SearchKey string `gorm:"not null;default:''"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
