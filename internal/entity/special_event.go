package entity

type SpecialEvent struct {
	Base
	Name   string `gorm:"unique;not null"`
	Emoji  string
	Color  int
	Active bool
}
