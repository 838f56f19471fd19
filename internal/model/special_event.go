package model

type CreateSpecialEventRequest struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color int    `json:"color"`
}

type CreateSpecialEventResponse struct {
	SpecialEvent SpecialEvent `json:"special_event"`
}

type GetSpecialEventsRequest struct {
	ActiveOnly bool `json:"active_only" form:"active_only"`
}

type GetSpecialEventsResponse struct {
	SpecialEvents []SpecialEvent `json:"special_events"`
}

type UpdateSpecialEventRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
	Color  int    `json:"color"`
	Active bool   `json:"active"`
}

type UpdateSpecialEventResponse struct {
	SpecialEvent SpecialEvent `json:"special_event"`
}

type DeleteSpecialEventRequest struct {
	ID string `json:"id"`
}

type DeleteSpecialEventResponse struct{}
