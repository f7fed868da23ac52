package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos-system/internal/domain"
	"pos-system/internal/logger"
	"pos-system/internal/orderservice/repository"
)

var (
	ErrNoItems     = errors.New("order must contain at least one item")
	ErrBadQuantity = errors.New("item quantity must be at least 1")
	ErrBadPrice    = errors.New("item price must not be negative")
)

// OrderService owns the order lifecycle: it is the only writer of order
// state, and the only publisher of order events.
type OrderService struct {
	repo repository.OrderRepositoryInterface
	pub  EventPublisher
	lg   *logger.Logger

	now func() time.Time
}

func NewOrderService(repo repository.OrderRepositoryInterface, pub EventPublisher, lg *logger.Logger) *OrderService {
	return &OrderService{repo: repo, pub: pub, lg: lg, now: time.Now}
}

// Create validates the submitted cart snapshot, assigns an order number,
// persists the order in pending and broadcasts new_order. The total is
// recomputed here from the line-item snapshots; whatever total the display
// sent along is ignored.
func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, ErrNoItems
	}
	total := 0.0
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrBadQuantity, item.Name)
		}
		if item.Price < 0 {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrBadPrice, item.Name)
		}
		total += item.Price * float64(item.Quantity)
	}

	// ORD<YYYYMMDD> prefix; the repository assigns <NNNN> from the day's
	// order count inside the creation transaction.
	prefix := "ORD" + s.now().UTC().Format("20060102")

	created, err := s.repo.Create(ctx, domain.Order{
		Items:       req.Items,
		TotalAmount: total,
		Status:      domain.StatusPending,
		Notes:       req.Notes,
	}, prefix)
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, domain.Event{Name: domain.EventNewOrder, Order: &created})
	s.lg.Info("order_created", map[string]any{
		"order_number": created.Number, "total": created.TotalAmount, "items": len(created.Items),
	})
	return created, nil
}

// Advance moves an order to target. Only the next state in the sequence is
// accepted; the check runs against the stored status inside the repository
// transaction, so the caller's idea of the current state is never trusted.
// Exactly one order_updated is emitted per successful transition, none on
// failure.
func (s *OrderService) Advance(ctx context.Context, id int64, target domain.Status, changedBy string) (domain.Order, error) {
	if changedBy == "" {
		changedBy = "order-service"
	}
	updated, err := s.repo.AdvanceStatus(ctx, id, target, changedBy)
	if err != nil {
		return domain.Order{}, err
	}

	s.publish(ctx, domain.Event{Name: domain.EventOrderUpdated, Order: &updated})
	s.lg.Info("order_status_changed", map[string]any{
		"order_number": updated.Number, "status": string(updated.Status), "changed_by": changedBy,
	})
	return updated, nil
}

func (s *OrderService) ListOpen(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOpen(ctx)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// publish broadcasts an event. A publish failure does not fail the request:
// the state change is already durable and displays recover missed events
// through their startup fetch.
func (s *OrderService) publish(ctx context.Context, ev domain.Event) {
	body, err := encodeEvent(ev)
	if err != nil {
		s.lg.Error("event_encode_failed", err, map[string]any{"event": string(ev.Name)})
		return
	}
	if err := s.pub.Publish(ctx, body); err != nil {
		s.lg.Error("event_publish_failed", err, map[string]any{"event": string(ev.Name)})
	}
}
