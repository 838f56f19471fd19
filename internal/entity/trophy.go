package entity

import "time"

type Trophy struct {
	Base
	Name   string `gorm:"unique;not null"`
	Unique bool
	Icon   string
}

type UserTrophy struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TrophyID string `gorm:"primaryKey"`
	Trophy   Trophy `gorm:"foreignKey:TrophyID"`

	Quantity int `gorm:"default:1"`
}
