package domain

// CreateOrderRequest is the body of POST /api/orders. TotalAmount is what
// the submitting display computed; the service recomputes it from the item
// snapshots and the recomputed value wins.
type CreateOrderRequest struct {
	Items       []LineItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	Notes       string     `json:"notes,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpsertMenuItemRequest struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
