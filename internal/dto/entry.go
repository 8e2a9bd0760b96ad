package dto

import "time"

// CreateEntryRequest contains a new income or expense record. Amount travels
// as a string so decimal precision survives JSON.
type CreateEntryRequest struct {
	Type        string `json:"type" validate:"required,oneof=income expense"`
	Amount      string `json:"amount" validate:"required"`
	CategoryID  string `json:"categoryId" validate:"required,uuid"`
	Description string `json:"description" validate:"max=500"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

// UpdateEntryRequest patches an existing entry. Zero-valued fields are left
// untouched.
type UpdateEntryRequest struct {
	Type        string  `json:"type" validate:"omitempty,oneof=income expense"`
	Amount      string  `json:"amount" validate:"omitempty"`
	CategoryID  string  `json:"categoryId" validate:"omitempty,uuid"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Date        string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// EntryResponse is an entry enriched with its category name.
type EntryResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Amount       string    `json:"amount"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Description  string    `json:"description"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ListEntriesResponse wraps an owner's entry listing.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int64           `json:"total"`
}
