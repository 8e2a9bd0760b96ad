package dto

import "time"

// CreateCategoryRequest contains a new category name.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse represents a single category.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListCategoriesResponse wraps an owner's category listing.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
