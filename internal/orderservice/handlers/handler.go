package handlers

import "pos-system/internal/orderservice/service"

type Handler struct {
	Orders *OrderHandler
	Menu   *MenuHandler
}

func New(svc *service.Service) *Handler {
	return &Handler{
		Orders: NewOrderHandler(svc.Orders),
		Menu:   NewMenuHandler(svc.Menu),
	}
}
