package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventEnvelope(t *testing.T) {
	ev := Event{
		Name: EventNewOrder,
		Order: &Order{
			ID:     1,
			Number: "ORD202406010001",
			Status: StatusPending,
			Items:  []LineItem{{MenuItemID: 3, Name: "Cola", Price: 3, Quantity: 2}},
		},
	}

	body, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"event":"new_order"`)

	var got Event
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, ev.Name, got.Name)
	require.NotNil(t, got.Order)
	assert.Equal(t, ev.Order.Number, got.Order.Number)
}

func TestMenuUpdatedCarriesNoPayload(t *testing.T) {
	body, err := json.Marshal(Event{Name: EventMenuUpdated})
	require.NoError(t, err)
	assert.Equal(t, `{"event":"menu_updated"}`, string(body))
}
