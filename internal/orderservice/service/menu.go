package service

import (
	"context"
	"errors"
	"fmt"

	"pos-system/internal/domain"
	"pos-system/internal/logger"
	"pos-system/internal/orderservice/repository"
)

var ErrBadMenuItem = errors.New("menu item needs a name and a non-negative price")

// MenuService reads the menu for displays and applies admin edits. Any
// change broadcasts menu_updated so connected displays re-fetch.
type MenuService struct {
	repo repository.MenuRepositoryInterface
	pub  EventPublisher
	lg   *logger.Logger
}

func NewMenuService(repo repository.MenuRepositoryInterface, pub EventPublisher, lg *logger.Logger) *MenuService {
	return &MenuService{repo: repo, pub: pub, lg: lg}
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *MenuService) Upsert(ctx context.Context, req domain.UpsertMenuItemRequest) (domain.MenuItem, error) {
	if req.Name == "" || req.Price < 0 {
		return domain.MenuItem{}, ErrBadMenuItem
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item, err := s.repo.Upsert(ctx, domain.MenuItem{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Available:   available,
	})
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("upsert menu item: %w", err)
	}

	if body, err := encodeEvent(domain.Event{Name: domain.EventMenuUpdated}); err == nil {
		if err := s.pub.Publish(ctx, body); err != nil {
			s.lg.Error("event_publish_failed", err, map[string]any{"event": string(domain.EventMenuUpdated)})
		}
	}
	s.lg.Info("menu_item_upserted", map[string]any{"id": item.ID, "name": item.Name})
	return item, nil
}
