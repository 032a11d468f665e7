package company

type CreateCompanyRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Logo          string   `json:"logo"`
	Website       string   `json:"website"`
	Address       string   `json:"address"`
	EmployeeRange string   `json:"employee_range"`
	CategoryIDs   []string `json:"category_ids" binding:"omitempty,dive,uuid"`
}

type UpdateCompanyRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Logo          string   `json:"logo"`
	Website       string   `json:"website"`
	Address       string   `json:"address"`
	EmployeeRange string   `json:"employee_range"`
	CategoryIDs   []string `json:"category_ids" binding:"omitempty,dive,uuid"`
}

type SearchCompanyRequest struct {
	Keyword string `json:"keyword"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CompanyResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	Logo          string             `json:"logo,omitempty"`
	Website       string             `json:"website,omitempty"`
	Address       string             `json:"address,omitempty"`
	EmployeeRange string             `json:"employee_range,omitempty"`
	Active        bool               `json:"active"`
	Categories    []CategoryResponse `json:"categories,omitempty"`
	AverageRating float64            `json:"average_rating"`
	ReviewCount   int64              `json:"review_count"`
	FollowerCount int64              `json:"follower_count"`
}

type ReviewResponse struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
