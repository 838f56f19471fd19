package model

import "time"

type CreateGameRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	SystemID        string `json:"system_id"`
	VttID           string `json:"vtt_id"`
	SpecialEventID  string `json:"special_event_id"`
	Description     string `json:"description"`
	Length          string `json:"length"`
	SessionLength   string `json:"session_length"`
	Frequency       string `json:"frequency"`
	Characters      string `json:"characters"`
	Classification  string `json:"classification"`
	Ambience        string `json:"ambience"`
	Complement      string `json:"complement"`
	Restriction     string `json:"restriction"`
	RestrictionTags string `json:"restriction_tags"`
	PartySize       int    `json:"party_size"`
	PartySelection  bool   `json:"party_selection"`
	Pregen          bool   `json:"pregen"`
	ImageURL        string `json:"image_url"`

	Date *time.Time `json:"date"`
}

type CreateGameResponse struct {
	Game Game `json:"game"`
}

type GetGameRequest struct {
	ID   string `json:"id" form:"id"`
	Slug string `json:"slug" form:"slug"`
}

type GetGameResponse struct {
	Game Game `json:"game"`
}

type GetGamesRequest struct {
	Status         string `json:"status" form:"status"`
	Type           string `json:"type" form:"type"`
	Name           string `json:"name" form:"name"`
	Restriction    string `json:"restriction" form:"restriction"`
	GMID           string `json:"gm_id" form:"gm_id"`
	PlayerID       string `json:"player_id" form:"player_id"`
	SystemID       string `json:"system_id" form:"system_id"`
	VttID          string `json:"vtt_id" form:"vtt_id"`
	SpecialEventID string `json:"special_event_id" form:"special_event_id"`
	Offset         int    `json:"offset" form:"offset"`
	Limit          int    `json:"limit" form:"limit"`
}

type GetGamesResponse struct {
	Games []Game `json:"games"`
}

type UpdateGameRequest struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	SystemID        string `json:"system_id"`
	VttID           string `json:"vtt_id"`
	SpecialEventID  string `json:"special_event_id"`
	Description     string `json:"description"`
	Length          string `json:"length"`
	SessionLength   string `json:"session_length"`
	Frequency       string `json:"frequency"`
	Characters      string `json:"characters"`
	Classification  string `json:"classification"`
	Ambience        string `json:"ambience"`
	Complement      string `json:"complement"`
	Restriction     string `json:"restriction"`
	RestrictionTags string `json:"restriction_tags"`
	PartySize       int    `json:"party_size"`
	PartySelection  bool   `json:"party_selection"`
	Pregen          bool   `json:"pregen"`
	ImageURL        string `json:"image_url"`

	Date *time.Time `json:"date"`
}

type UpdateGameResponse struct {
	Game Game `json:"game"`
}

type DeleteGameRequest struct {
	ID string `json:"id"`
}

type DeleteGameResponse struct{}

type PublishGameRequest struct {
	ID string `json:"id"`

	// Silent publishes the game already closed, with no open registration
	// phase.
	Silent bool `json:"silent"`
}

type PublishGameResponse struct {
	Game Game `json:"game"`
}

type CloseGameRequest struct {
	ID string `json:"id"`
}

type CloseGameResponse struct {
	Game Game `json:"game"`
}

type ReopenGameRequest struct {
	ID string `json:"id"`
}

type ReopenGameResponse struct {
	Game Game `json:"game"`
}

type ArchiveGameRequest struct {
	ID string `json:"id"`

	// WithTrophies awards the badge set matching the game type to the GM
	// and every registered player.
	WithTrophies bool `json:"with_trophies"`
}

type ArchiveGameResponse struct {
	Game Game `json:"game"`
}

type CloneGameRequest struct {
	ID string `json:"id"`
}

type CloneGameResponse struct {
	Game Game `json:"game"`
}

type RegisterGameRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Force bypasses the capacity and status checks. Reserved to admins.
	Force bool `json:"force"`
}

type RegisterGameResponse struct {
	Game Game `json:"game"`
}

type UnregisterGameRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type UnregisterGameResponse struct {
	Game Game `json:"game"`
}

type AlertGameRequest struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type AlertGameResponse struct{}
