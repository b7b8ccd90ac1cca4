package request

// CloseDayRequest picks the ledger date to close; empty means today
type CloseDayRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// SaleListQuery filters the sales history
type SaleListQuery struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Date    string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Waiter  string `form:"waiter"`
	Notes   string `form:"notes"`
	Search  string `form:"search"`
}
