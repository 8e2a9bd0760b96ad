package dto

// SetBudgetRequest upserts the spending target for a month. Month defaults to
// the current calendar month when omitted.
type SetBudgetRequest struct {
	Month       string `json:"month" validate:"omitempty,len=7"`
	TotalAmount string `json:"totalAmount" validate:"required"`
}

// BudgetResponse represents a stored budget.
type BudgetResponse struct {
	ID          string `json:"id"`
	Month       string `json:"month"`
	TotalAmount string `json:"totalAmount"`
}

// BudgetStatusResponse is the result of a budget check. Remaining is negative
// when the owner is over budget; that is a normal state, not an error.
type BudgetStatusResponse struct {
	Checked   bool   `json:"checked"`
	Month     string `json:"month,omitempty"`
	Budget    string `json:"budget,omitempty"`
	Spent     string `json:"spent,omitempty"`
	Remaining string `json:"remaining,omitempty"`
	Exceeded  bool   `json:"exceeded"`
}
