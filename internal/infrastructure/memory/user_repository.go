package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repo sobre el store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

// Create respeta la unicidad de username.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	c := *u
	r.s.users[u.ID] = &c
	return nil
}

// GetByID (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

// GetByUsername (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

// List por username.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		c := *u
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}

// Count ver UserRepository.
func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}

// Delete ver UserRepository.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// TxRunner ejecuta fn directamente sobre el repo en memoria (sin rollback).
type TxRunner struct {
	users *UserRepo
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{users: NewUserRepository(s)}
}

// Run ver auth.TxRunner.
func (t *TxRunner) Run(_ context.Context, fn func(users repository.UserRepository) error) error {
	return fn(t.users)
}
