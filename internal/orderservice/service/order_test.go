package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-system/internal/domain"
	"pos-system/internal/logger"
)

type fakeOrderRepo struct {
	orders map[int64]domain.Order
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]domain.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order domain.Order, numberPrefix string) (domain.Order, error) {
	count := 0
	for _, o := range f.orders {
		if strings.HasPrefix(o.Number, numberPrefix) {
			count++
		}
	}
	order.Number = fmt.Sprintf("%s%04d", numberPrefix, count+1)

	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = order.CreatedAt
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) ListOpen(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.Status != domain.StatusCompleted {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) AdvanceStatus(_ context.Context, id int64, target domain.Status, _ string) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	next, ok := o.Status.Next()
	if !ok || next != target {
		return domain.Order{}, domain.ErrInvalidTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now().UTC()
	f.orders[id] = o
	return o, nil
}

type fakePublisher struct {
	events []domain.Event
}

func (f *fakePublisher) Publish(_ context.Context, body []byte) error {
	var ev domain.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	f.events = append(f.events, ev)
	return nil
}

func newTestOrderService() (*OrderService, *fakeOrderRepo, *fakePublisher) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := NewOrderService(repo, pub, logger.New("test"))
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo, pub
}

func someRequest() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		Items: []domain.LineItem{
			{MenuItemID: 1, Name: "Burger", Price: 10.00, Quantity: 2},
			{MenuItemID: 2, Name: "Fries", Price: 5.00, Quantity: 1},
		},
		Notes: "table 4",
	}
}

func TestCreateOrder(t *testing.T) {
	svc, _, pub := newTestOrderService()

	created, err := svc.Create(context.Background(), someRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "ORD202406010001", created.Number)
	assert.InDelta(t, 25.00, created.TotalAmount, 1e-9)
	assert.Equal(t, "table 4", created.Notes)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventNewOrder, pub.events[0].Name)
	require.NotNil(t, pub.events[0].Order)
	assert.Equal(t, created.Number, pub.events[0].Order.Number)
}

func TestCreateOrderNumberSequence(t *testing.T) {
	svc, _, _ := newTestOrderService()

	first, err := svc.Create(context.Background(), someRequest())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), someRequest())
	require.NoError(t, err)

	assert.Equal(t, "ORD202406010001", first.Number)
	assert.Equal(t, "ORD202406010002", second.Number)
}

func TestCreateOrderRecomputesTotal(t *testing.T) {
	svc, _, _ := newTestOrderService()

	req := someRequest()
	req.TotalAmount = 999.99 // stale client total is ignored
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 25.00, created.TotalAmount, 1e-9)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, pub := newTestOrderService()
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = svc.Create(ctx, domain.CreateOrderRequest{
		Items: []domain.LineItem{{Name: "Burger", Price: 10, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrBadQuantity)

	_, err = svc.Create(ctx, domain.CreateOrderRequest{
		Items: []domain.LineItem{{Name: "Burger", Price: -1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrBadPrice)

	assert.Empty(t, pub.events, "no event may be emitted for a rejected creation")
}

func TestAdvanceAcceptsOnlyNextState(t *testing.T) {
	svc, repo, pub := newTestOrderService()
	ctx := context.Background()

	created, err := svc.Create(ctx, someRequest())
	require.NoError(t, err)
	pub.events = nil

	// pending -> cooking skips received: rejected, state untouched, no event
	_, err = svc.Advance(ctx, created.ID, domain.StatusCooking, "kitchen-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	stored, _ := repo.GetByID(ctx, created.ID)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Empty(t, pub.events)

	updated, err := svc.Advance(ctx, created.ID, domain.StatusReceived, "kitchen-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, updated.Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventOrderUpdated, pub.events[0].Name)
	assert.Equal(t, domain.StatusReceived, pub.events[0].Order.Status)
}

func TestAdvanceFullSequence(t *testing.T) {
	svc, repo, pub := newTestOrderService()
	ctx := context.Background()

	created, err := svc.Create(ctx, someRequest())
	require.NoError(t, err)
	pub.events = nil

	for _, target := range []domain.Status{
		domain.StatusReceived, domain.StatusCooking,
	} {
		_, err := svc.Advance(ctx, created.ID, target, "kitchen-1")
		require.NoError(t, err)
	}

	// cooking -> completed skips ready
	_, err = svc.Advance(ctx, created.ID, domain.StatusCompleted, "kitchen-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	stored, _ := repo.GetByID(ctx, created.ID)
	assert.Equal(t, domain.StatusCooking, stored.Status)

	_, err = svc.Advance(ctx, created.ID, domain.StatusReady, "kitchen-1")
	require.NoError(t, err)
	_, err = svc.Advance(ctx, created.ID, domain.StatusCompleted, "kitchen-1")
	require.NoError(t, err)

	// completed is terminal; same-state repeats are rejected too
	_, err = svc.Advance(ctx, created.ID, domain.StatusCompleted, "kitchen-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Len(t, pub.events, 4, "one event per successful transition")
}

func TestAdvanceUnknownOrder(t *testing.T) {
	svc, _, pub := newTestOrderService()

	_, err := svc.Advance(context.Background(), 42, domain.StatusReceived, "kitchen-1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Empty(t, pub.events)
}
