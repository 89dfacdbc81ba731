package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
	"github.com/jhoicas/Hoteleria-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación del personal: registro y login.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
	nowFn  func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, nowFn: time.Now}
}

// Register crea un usuario del personal: valida el rol, hashea la contraseña
// con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" {
		return nil, domain.Validationf("email", "obligatorio")
	}
	if in.Password == "" {
		return nil, domain.Validationf("password", "obligatoria")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.ValidRole(role) {
		return nil, domain.Validationf("role", "rol desconocido %q", role)
	}
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.nowFn()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(u), nil
}

// Login verifica email/contraseña, registra last_login y genera el JWT con
// el rol para el middleware RBAC.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !u.IsActive {
		return nil, domain.ErrForbidden
	}

	now := uc.nowFn()
	u.LastLogin = &now
	u.UpdatedAt = now
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *usecase.ToUserResponse(u)}, nil
}
