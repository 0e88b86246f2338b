package repository

import "github.com/jhoicas/stocktrack-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByUserAndName(userID, name string) (*entity.Category, error)
	ListByUser(userID string) ([]*entity.Category, error)
	Delete(id string) error
}
