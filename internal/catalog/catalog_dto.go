package catalog

type CreateItemRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type UpdateItemRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type ItemResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
