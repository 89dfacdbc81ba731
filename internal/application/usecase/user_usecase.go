package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// UserUseCase gestión del personal: listado y activación/desactivación.
// El alta y el login viven en el módulo de auth.
type UserUseCase struct {
	users repository.UserRepository
	nowFn func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users, nowFn: time.Now}
}

// List devuelve todo el personal ordenado por nombre.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar personal: %w", err)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return items, nil
}

// SetActive activa o desactiva un usuario del personal.
func (uc *UserUseCase) SetActive(ctx context.Context, id string, active bool) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &domain.NotFoundError{Entity: "usuario", ID: id}
	}
	u.IsActive = active
	u.UpdatedAt = uc.nowFn()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// ToUserResponse convierte la entidad a su representación externa.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
