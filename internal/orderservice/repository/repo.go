package repository

import "database/sql"

type Repository struct {
	Orders OrderRepositoryInterface
	Menu   MenuRepositoryInterface
}

func New(db *sql.DB) *Repository {
	return &Repository{
		Orders: NewOrderRepository(db),
		Menu:   NewMenuRepository(db),
	}
}
