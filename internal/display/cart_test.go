package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-system/internal/domain"
)

func testMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: 1, Name: "Burger", Price: 10.00, Category: "Mains", Available: true},
		{ID: 2, Name: "Fries", Price: 5.00, Category: "Sides", Available: true},
		{ID: 3, Name: "Cola", Price: 3.00, Category: "Drinks", Available: true},
	}
}

func newTestCart() *Cart {
	c := NewCart()
	c.SetMenu(testMenu())
	return c
}

func TestCartAddMergesSameItem(t *testing.T) {
	c := newTestCart()

	require.NoError(t, c.Add(1))
	require.NoError(t, c.Add(1))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Burger", items[0].Name)
}

func TestCartAddUnknownItem(t *testing.T) {
	c := newTestCart()
	assert.ErrorIs(t, c.Add(99), domain.ErrMenuItemNotFound)
	assert.Zero(t, c.Len())
}

func TestCartSnapshotPricing(t *testing.T) {
	c := newTestCart()
	require.NoError(t, c.Add(1))

	// a later menu edit must not touch the existing line item
	c.SetMenu([]domain.MenuItem{{ID: 1, Name: "Burger", Price: 99.00, Available: true}})

	assert.InDelta(t, 10.00, c.Total(), 1e-9)
	require.NoError(t, c.Add(1))
	assert.Equal(t, 2, c.Items()[0].Quantity)
	assert.InDelta(t, 20.00, c.Total(), 1e-9) // merged entry keeps the old snapshot
}

func TestCartQuantityFloor(t *testing.T) {
	c := newTestCart()
	require.NoError(t, c.Add(2))

	require.NoError(t, c.Decrement(0)) // already 1: silent no-op
	assert.Equal(t, 1, c.Items()[0].Quantity)

	require.NoError(t, c.Increment(0))
	require.NoError(t, c.Increment(0))
	assert.Equal(t, 3, c.Items()[0].Quantity)
	require.NoError(t, c.Decrement(0))
	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestCartIndexBounds(t *testing.T) {
	c := newTestCart()
	require.NoError(t, c.Add(1))

	assert.ErrorIs(t, c.Increment(1), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Decrement(-1), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Remove(5), domain.ErrIndexOutOfRange)
	assert.Equal(t, 1, c.Len())
}

func TestCartRemove(t *testing.T) {
	c := newTestCart()
	require.NoError(t, c.Add(1))
	require.NoError(t, c.Add(2))
	require.NoError(t, c.Add(3))

	require.NoError(t, c.Remove(1))
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Burger", items[0].Name)
	assert.Equal(t, "Cola", items[1].Name)
}

func TestCartTotalUnderOperations(t *testing.T) {
	c := newTestCart()
	assert.Zero(t, c.Total())

	require.NoError(t, c.Add(1)) // burger 10
	require.NoError(t, c.Add(2)) // fries 5
	require.NoError(t, c.Add(1)) // burger x2
	require.NoError(t, c.Increment(1))
	assert.InDelta(t, 30.00, c.Total(), 1e-9)

	require.NoError(t, c.Remove(0))
	assert.InDelta(t, 10.00, c.Total(), 1e-9)

	for _, item := range c.Items() {
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestCartSubmitEmpty(t *testing.T) {
	c := newTestCart()
	_, err := c.Submit()
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCartSubmitScenario(t *testing.T) {
	c := newTestCart()
	require.NoError(t, c.Add(1))
	assert.InDelta(t, 10.00, c.Total(), 1e-9)
	require.NoError(t, c.Increment(0))
	assert.InDelta(t, 20.00, c.Total(), 1e-9)
	c.SetNotes("no onions")

	req, err := c.Submit()
	require.NoError(t, err)
	require.Len(t, req.Items, 1)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.InDelta(t, 20.00, req.TotalAmount, 1e-9)
	assert.Equal(t, "no onions", req.Notes)

	// submit must not clear; that happens only after the server confirms
	assert.Equal(t, 1, c.Len())
}

func TestCartClearResetsNotes(t *testing.T) {
	c := newTestCart()
	require.NoError(t, c.Add(1))
	c.SetNotes("extra sauce")

	c.Clear()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Total())
	assert.Empty(t, c.Notes())
}
