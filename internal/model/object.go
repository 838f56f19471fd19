package model

import "time"

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	SlugName string `json:"slug_name"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
	IsGM     bool   `json:"gm"`
	Mention  string `json:"mention"`
	IsPlayer bool   `json:"is_player"`
}

type Game struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	Type            string        `json:"type"`
	Status          string        `json:"status"`
	GM              User          `json:"gm"`
	System          string        `json:"system,omitempty"`
	Vtt             string        `json:"vtt,omitempty"`
	SpecialEvent    string        `json:"special_event,omitempty"`
	Description     string        `json:"description"`
	Length          string        `json:"length"`
	SessionLength   string        `json:"session_length,omitempty"`
	Frequency       string        `json:"frequency,omitempty"`
	Characters      string        `json:"characters,omitempty"`
	Classification  string        `json:"classification,omitempty"`
	Ambience        string        `json:"ambience,omitempty"`
	Complement      string        `json:"complement,omitempty"`
	Restriction     string        `json:"restriction"`
	RestrictionTags string        `json:"restriction_tags,omitempty"`
	PartySize       int           `json:"party_size"`
	PartySelection  bool          `json:"party_selection"`
	Pregen          bool          `json:"pregen"`
	ImageURL        string        `json:"image_url,omitempty"`
	Date            *time.Time    `json:"date,omitempty"`
	ChannelID       string        `json:"channel_id,omitempty"`
	RoleID          string        `json:"role_id,omitempty"`
	MsgID           string        `json:"msg_id,omitempty"`
	Players         []User        `json:"players"`
	Sessions        []GameSession `json:"sessions,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type GameSession struct {
	ID     string    `json:"id"`
	GameID string    `json:"game_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type GameEvent struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	GameID      string    `json:"game_id"`
	UserID      string    `json:"user_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type Trophy struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Unique bool   `json:"unique"`
	Icon   string `json:"icon,omitempty"`
}

type UserTrophy struct {
	Trophy   Trophy `json:"trophy"`
	Quantity int    `json:"quantity"`
}

type System struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type Vtt struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type SpecialEvent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji,omitempty"`
	Color  int    `json:"color,omitempty"`
	Active bool   `json:"active"`
}

type Category struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Size int    `json:"size"`
}

// AccessToken is the claim object embedded in the authentication token.
type AccessToken struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}
