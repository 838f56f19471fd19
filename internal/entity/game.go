package entity

import (
	"database/sql"
	"time"

	"github.com/questmaster/backend/pkg/enum"
)

type GameType string

var (
	Oneshot  = enum.New(GameType("oneshot"))
	Campaign = enum.New(GameType("campaign"))
)

type GameStatusType string

var (
	GameDraft    = enum.New(GameStatusType("draft"))
	GameOpen     = enum.New(GameStatusType("open"))
	GameClosed   = enum.New(GameStatusType("closed"))
	GameArchived = enum.New(GameStatusType("archived"))
)

type RestrictionType string

var (
	AllAudiences = enum.New(RestrictionType("all"))
	Sixteen      = enum.New(RestrictionType("16+"))
	Eighteen     = enum.New(RestrictionType("18+"))
)

type Game struct {
	Base

	Name string
	Slug string `gorm:"unique"`

	Type   GameType
	Status GameStatusType `gorm:"default:draft"`

	GMID string `gorm:"not null"`
	GM   User   `gorm:"foreignKey:GMID"`

	SystemID sql.NullString
	System   System `gorm:"foreignKey:SystemID"`

	VttID sql.NullString
	Vtt   Vtt `gorm:"foreignKey:VttID"`

	SpecialEventID sql.NullString
	SpecialEvent   SpecialEvent `gorm:"foreignKey:SpecialEventID"`

	Description     string `gorm:"type:text"`
	Length          string
	SessionLength   string
	Frequency       string
	Characters      string
	Classification  string
	Ambience        string
	Complement      string `gorm:"type:text"`
	Restriction     RestrictionType
	RestrictionTags string
	PartySize       int `gorm:"default:4"`
	PartySelection  bool
	Pregen          bool
	ImageURL        string

	// Scheduled date announced by the GM, shown until sessions exist.
	Date sql.NullTime

	// Discord resources created when the game is published. Empty until
	// then, and cleared again when the game is archived.
	ChannelID string
	RoleID    string
	MsgID     string
}

type GamePlayer struct {
	CreatedAt time.Time

	GameID string `gorm:"primaryKey"`
	Game   Game   `gorm:"foreignKey:GameID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}
