package model

type LoginRequest struct {
	UserID string `json:"user_id"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type GetUserRequest struct {
	ID string `json:"id" form:"id"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type RefreshProfileRequest struct {
	ID string `json:"id"`
}

type RefreshProfileResponse struct {
	User User `json:"user"`
}

type MarkNotPlayerRequest struct {
	ID string `json:"id"`
}

type MarkNotPlayerResponse struct{}

type ClearNotPlayerRequest struct {
	ID string `json:"id"`
}

type ClearNotPlayerResponse struct{}
