package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
	"github.com/jhoicas/inventario-scomm/pkg/logger"
)

// DefaultUsers cuentas iniciales cuando la tabla users está vacía.
var DefaultUsers = []struct {
	Username, Password, Role string
}{
	{"admin", "admin123", entity.RoleAdmin},
	{"editor", "editor123", entity.RoleEditor},
	{"viewer", "viewer123", entity.RoleViewer},
}

// UserUseCase gestión de usuarios (solo administradores).
type UserUseCase struct {
	users repository.UserRepository
	tx    TxRunner
	log   *logger.Logger
	now   func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, tx TxRunner, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{users: users, tx: tx, log: log.Named("users"), now: time.Now}
}

// List usuarios ordenados por username.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Create hashea la contraseña y persiste. Un username repetido llega desde el
// repositorio como ErrUsernameTaken.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" || !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    uc.now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("usuario creado")
	res := toUserResponse(user)
	return &res, nil
}

// Delete aplica, en orden: no borrarse a sí mismo, el usuario existe, no es
// administrador y no es el último usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string, actor *entity.Actor) error {
	if actor != nil && actor.UserID == id {
		return domain.ErrSelfDelete
	}
	return uc.tx.Run(ctx, func(users repository.UserRepository) error {
		target, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNotFound
		}
		if target.Role == entity.RoleAdmin {
			return domain.ErrAdminDelete
		}
		total, err := users.Count(ctx)
		if err != nil {
			return err
		}
		if total <= 1 {
			return domain.ErrLastUser
		}
		if err := users.Delete(ctx, id); err != nil {
			return err
		}
		uc.log.Info().Str("username", target.Username).Msg("usuario eliminado")
		return nil
	})
}

// SeedDefaultUsers crea admin, editor y viewer si no hay ningún usuario.
// Devuelve cuántos creó.
func (uc *UserUseCase) SeedDefaultUsers(ctx context.Context) (int, error) {
	n, err := uc.users.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for _, d := range DefaultUsers {
		if _, err := uc.Create(ctx, dto.CreateUserRequest{Username: d.Username, Password: d.Password, Role: d.Role}); err != nil {
			return 0, err
		}
	}
	uc.log.Warn().Msg("usuarios por defecto creados; cambie las contraseñas")
	return len(DefaultUsers), nil
}
