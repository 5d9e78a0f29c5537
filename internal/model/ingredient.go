package model

import "time"

// Ingredient — запись общего каталога ингредиентов. Не версионируется.
type Ingredient struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
	Unit string `gorm:"not null"`

	SearchKey string `gorm:"not null;default:''"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
