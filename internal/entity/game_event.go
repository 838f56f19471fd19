package entity

import (
	"database/sql"

	"github.com/questmaster/backend/pkg/enum"
)

type EventActionType string

var (
	EventCreate        = enum.New(EventActionType("create"))
	EventEdit          = enum.New(EventActionType("edit"))
	EventDelete        = enum.New(EventActionType("delete"))
	EventCreateSession = enum.New(EventActionType("create-session"))
	EventEditSession   = enum.New(EventActionType("edit-session"))
	EventDeleteSession = enum.New(EventActionType("delete-session"))
	EventRegister      = enum.New(EventActionType("register"))
	EventUnregister    = enum.New(EventActionType("unregister"))
	EventAlert         = enum.New(EventActionType("alert"))
)

type GameEvent struct {
	Base

	Action EventActionType `gorm:"not null"`

	GameID string `gorm:"not null;index"`
	Game   Game   `gorm:"foreignKey:GameID"`

	// UserID is the actor, empty for system generated events.
	UserID sql.NullString
	User   User `gorm:"foreignKey:UserID"`

	Description string `gorm:"type:text"`
}
