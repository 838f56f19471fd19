package entity

import "time"

type GameSession struct {
	Base

	GameID string `gorm:"not null;index"`
	Game   Game   `gorm:"foreignKey:GameID"`

	Start time.Time `gorm:"not null"`
	End   time.Time `gorm:"not null"`
}
