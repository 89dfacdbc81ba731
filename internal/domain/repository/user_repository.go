package repository

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para el personal del hotel.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail devuelve nil, nil si el email no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve todo el personal ordenado por nombre ascendente.
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
