package model

import "time"

type CreateGameSessionRequest struct {
	GameID string    `json:"game_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type CreateGameSessionResponse struct {
	Session GameSession `json:"session"`
}

type GetGameSessionsRequest struct {
	GameID string `json:"game_id" form:"game_id"`
}

type GetGameSessionsResponse struct {
	Sessions []GameSession `json:"sessions"`
}

type UpdateGameSessionRequest struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type UpdateGameSessionResponse struct {
	Session GameSession `json:"session"`
}

type DeleteGameSessionRequest struct {
	ID string `json:"id"`
}

type DeleteGameSessionResponse struct{}
