package entity

type System struct {
	Base
	Name string `gorm:"unique;not null"`
	Icon string
}
