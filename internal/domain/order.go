package domain

import "time"

// Status is the lifecycle state of an order. Orders move strictly forward:
// pending -> received -> cooking -> ready -> completed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReceived  Status = "received"
	StatusCooking   Status = "cooking"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
)

var statusOrder = map[Status]Status{
	StatusPending:  StatusReceived,
	StatusReceived: StatusCooking,
	StatusCooking:  StatusReady,
	StatusReady:    StatusCompleted,
}

// Next returns the single legal successor state. ok is false for
// completed and for anything that is not a known status.
func (s Status) Next() (Status, bool) {
	next, ok := statusOrder[s]
	return next, ok
}

func (s Status) Valid() bool {
	if s == StatusCompleted {
		return true
	}
	_, ok := statusOrder[s]
	return ok
}

// ParseStatus validates a client-supplied status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrUnknownStatus
	}
	return st, nil
}

type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Available   bool    `json:"available"`
}

// LineItem is a snapshot of a menu item taken at the moment it was added
// to a cart. Later menu edits never touch open carts or stored orders.
type LineItem struct {
	MenuItemID int64   `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type Order struct {
	ID          int64      `json:"id"`
	Number      string     `json:"order_number"`
	Items       []LineItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	Status      Status     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type StatusLog struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Status    Status    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}
