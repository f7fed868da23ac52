package domain

// EventName discriminates broadcast payloads.
type EventName string

const (
	EventNewOrder     EventName = "new_order"
	EventOrderUpdated EventName = "order_updated"
	EventMenuUpdated  EventName = "menu_updated"
)

// Event is the envelope pushed to every subscribed display. Order events
// carry the full current snapshot of the order, never a diff, so applying
// the same event twice (or out of order relative to other orders) is safe.
// menu_updated carries no payload; receivers re-fetch /api/menu.
type Event struct {
	Name  EventName `json:"event"`
	Order *Order    `json:"order,omitempty"`
}
