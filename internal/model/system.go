package model

type CreateSystemRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type CreateSystemResponse struct {
	System System `json:"system"`
}

type GetSystemsRequest struct{}

type GetSystemsResponse struct {
	Systems []System `json:"systems"`
}

type DeleteSystemRequest struct {
	ID string `json:"id"`
}

type DeleteSystemResponse struct{}

type CreateVttRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type CreateVttResponse struct {
	Vtt Vtt `json:"vtt"`
}

type GetVttsRequest struct{}

type GetVttsResponse struct {
	Vtts []Vtt `json:"vtts"`
}

type DeleteVttRequest struct {
	ID string `json:"id"`
}

type DeleteVttResponse struct{}
