package model

type CreateTrophyRequest struct {
	Name   string `json:"name"`
	Unique bool   `json:"unique"`
	Icon   string `json:"icon"`
}

type CreateTrophyResponse struct {
	Trophy Trophy `json:"trophy"`
}

type GetTrophiesRequest struct{}

type GetTrophiesResponse struct {
	Trophies []Trophy `json:"trophies"`
}

type AwardTrophyRequest struct {
	UserID   string `json:"user_id"`
	TrophyID string `json:"trophy_id"`
	Amount   int    `json:"amount"`
}

type AwardTrophyResponse struct{}

type GetUserTrophiesRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

type GetUserTrophiesResponse struct {
	Trophies []UserTrophy `json:"trophies"`
}

type GetTrophyLeaderboardRequest struct {
	TrophyID string `json:"trophy_id" form:"trophy_id"`
	Limit    int    `json:"limit" form:"limit"`
}

type TrophyLeaderboardEntry struct {
	User  User `json:"user"`
	Total int  `json:"total"`
}

type GetTrophyLeaderboardResponse struct {
	Entries []TrophyLeaderboardEntry `json:"entries"`
}
