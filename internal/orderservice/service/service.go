package service

import (
	"context"
	"encoding/json"

	"pos-system/internal/domain"
	"pos-system/internal/logger"
	"pos-system/internal/orderservice/repository"
)

// EventPublisher is the broadcast leg of the order service: one JSON
// envelope per lifecycle change, fanned out to every subscriber.
type EventPublisher interface {
	Publish(ctx context.Context, body []byte) error
}

type Service struct {
	Orders *OrderService
	Menu   *MenuService
}

func New(repo *repository.Repository, pub EventPublisher, lg *logger.Logger) *Service {
	return &Service{
		Orders: NewOrderService(repo.Orders, pub, lg),
		Menu:   NewMenuService(repo.Menu, pub, lg),
	}
}

func encodeEvent(ev domain.Event) ([]byte, error) {
	return json.Marshal(ev)
}
