package model

type CreateCategoryRequest struct {
	// ID is the Discord category channel id.
	ID   string `json:"id"`
	Type string `json:"type"`
}

type CreateCategoryResponse struct {
	Category Category `json:"category"`
}

type GetCategoriesRequest struct{}

type GetCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type DeleteCategoryRequest struct {
	ID string `json:"id"`
}

type DeleteCategoryResponse struct{}
