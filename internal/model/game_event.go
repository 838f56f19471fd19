package model

type GetGameEventsRequest struct {
	GameID string `json:"game_id" form:"game_id"`
	Action string `json:"action" form:"action"`
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
}

type GetGameEventsResponse struct {
	Events []GameEvent `json:"events"`
}
