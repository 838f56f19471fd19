package entity

import (
	"database/sql"
	"regexp"
)

type User struct {
	Base
	Username string
	SlugName string `gorm:"unique"`
	Role     string `gorm:"default:USER"`

	// NotPlayerAsOf is set when the member left the guild. The profile is
	// kept so old games still resolve their players.
	NotPlayerAsOf sql.NullTime
}

const (
	AdminRole = "ADMIN"
	GMRole    = "GM"
	UserRole  = "USER"
)

// Discord snowflakes are 17 to 21 decimal digits.
var discordIDRegexp = regexp.MustCompile(`^[0-9]{17,21}$`)

func IsDiscordID(id string) bool {
	return discordIDRegexp.MatchString(id)
}
