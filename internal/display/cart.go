package display

import "pos-system/internal/domain"

// Cart accumulates line items for one waiter session before submission.
// Prices and names are snapshotted from the menu at add time, so a menu
// edit while the cart is open never changes what was already added.
type Cart struct {
	menu  []domain.MenuItem
	items []domain.LineItem
	notes string
}

func NewCart() *Cart {
	return &Cart{}
}

// SetMenu replaces the menu the cart resolves ids against. Existing line
// items keep their snapshots.
func (c *Cart) SetMenu(menu []domain.MenuItem) {
	c.menu = menu
}

// Add resolves a menu item id and either merges into the existing line item
// for that id or appends a new one with quantity 1. Two line items never
// share a menu item id.
func (c *Cart) Add(menuItemID int64) error {
	var found *domain.MenuItem
	for i := range c.menu {
		if c.menu[i].ID == menuItemID {
			found = &c.menu[i]
			break
		}
	}
	if found == nil {
		return domain.ErrMenuItemNotFound
	}

	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items[i].Quantity++
			return nil
		}
	}
	c.items = append(c.items, domain.LineItem{
		MenuItemID: found.ID,
		Name:       found.Name,
		Price:      found.Price,
		Quantity:   1,
	})
	return nil
}

func (c *Cart) Increment(index int) error {
	if index < 0 || index >= len(c.items) {
		return domain.ErrIndexOutOfRange
	}
	c.items[index].Quantity++
	return nil
}

// Decrement lowers a quantity by one but never below 1; at 1 it is a
// silent no-op. Removal is its own operation.
func (c *Cart) Decrement(index int) error {
	if index < 0 || index >= len(c.items) {
		return domain.ErrIndexOutOfRange
	}
	if c.items[index].Quantity > 1 {
		c.items[index].Quantity--
	}
	return nil
}

func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return domain.ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

func (c *Cart) SetNotes(notes string) { c.notes = notes }
func (c *Cart) Notes() string         { return c.notes }
func (c *Cart) Len() int              { return len(c.items) }

// Items returns a copy; callers cannot mutate cart state through it.
func (c *Cart) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c *Cart) Clear() {
	c.items = nil
	c.notes = ""
}

// Submit builds the order-creation request. It does not clear the cart:
// clearing happens only after the server confirms creation, so a failed
// submission leaves everything in place for a retry.
func (c *Cart) Submit() (domain.CreateOrderRequest, error) {
	if len(c.items) == 0 {
		return domain.CreateOrderRequest{}, domain.ErrEmptyCart
	}
	return domain.CreateOrderRequest{
		Items:       c.Items(),
		TotalAmount: c.Total(),
		Notes:       c.notes,
	}, nil
}
