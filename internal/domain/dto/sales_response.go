package dto

// SalesDataResponse represents the JSON structure returned by
// GET /api/v1/sales on success.
type SalesDataResponse struct {
	Purchases int64   `json:"purchases" example:"42"`    // Orders created inside the range
	Revenue   float64 `json:"revenue" example:"1234.56"` // Sum of order totals, 2 decimals
}

// SalesErrorResponse is the 400 body of GET /api/v1/sales.
//
// Error is the machine distinguishable tag ("Invalid start date format",
// "Date range too large", ...). The remaining fields are filled depending on
// the failure and omitted otherwise.
type SalesErrorResponse struct {
	Error         string `json:"error" example:"Invalid start date format"`
	Message       string `json:"message" example:"\"2025-09-01\" is not in DD-MM-YYYY format"`
	Example       string `json:"example,omitempty" example:"01-09-2025"`
	Format        string `json:"format,omitempty" example:"DD-MM-YYYY"`
	Expected      string `json:"expected,omitempty" example:"DD-MM-YYYY"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	RequestedDays int    `json:"requestedDays,omitempty"`
	MaxDays       int    `json:"maxDays,omitempty"`
}
