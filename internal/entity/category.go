package entity

// Category mirrors a Discord category channel holding game channels. Size
// tracks how many game channels currently live under it.
type Category struct {
	Base
	Type GameType `gorm:"not null"`
	Size int      `gorm:"default:0"`
}
