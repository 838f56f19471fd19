package entity

type Vtt struct {
	Base
	Name string `gorm:"unique;not null"`
	Icon string
}
