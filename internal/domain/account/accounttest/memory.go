// Package accounttest provides an in-memory account.Repository for tests.
package accounttest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
)

type Repo struct {
	mu          sync.Mutex
	users       map[string]*models.User
	salonPhones map[string]bool

	// Err, when set, is returned by every call.
	Err error
	// CreateErr, when set, is returned by Create only.
	CreateErr error
}

func New() *Repo {
	return &Repo{
		users:       map[string]*models.User{},
		salonPhones: map[string]bool{},
	}
}

func (r *Repo) FindActiveByEmailOrPhone(_ context.Context, email, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if email == "" && phone == "" {
		return nil, account.ErrNotFound
	}
	for _, u := range r.users {
		if !u.IsActive {
			continue
		}
		if email != "" && u.Email == email {
			return clone(u), nil
		}
		if phone != "" && u.Phone != nil && *u.Phone == phone {
			return clone(u), nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *Repo) FindActiveByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.IsActive && u.Email == email {
			return clone(u), nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *Repo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, account.ErrNotFound
	}
	return clone(u), nil
}

func (r *Repo) ActiveSalonPhoneExists(_ context.Context, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	return r.salonPhones[phone], nil
}

// Create enforces the same active-row uniqueness as the store's partial indexes.
func (r *Repo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, other := range r.users {
		if !other.IsActive || !u.IsActive {
			continue
		}
		if other.Email == u.Email {
			return account.ErrDuplicate
		}
		if u.Phone != nil && other.Phone != nil && *u.Phone == *other.Phone {
			return account.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = clone(u)
	return nil
}

func (r *Repo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return account.ErrNotFound
	}
	u.LastLogin = &at
	return nil
}

func (r *Repo) UpdatePassword(_ context.Context, id, hashed string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[id]
	if !ok || !u.IsActive {
		return account.ErrNotFound
	}
	u.Password = hashed
	u.UpdatedAt = at
	return nil
}

func (r *Repo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), r.Err
}

// Get returns a copy of the stored account, or nil.
func (r *Repo) Get(id string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.users[id])
}

// Put stores a copy of u as is.
func (r *Repo) Put(u *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = clone(u)
}

func (r *Repo) AddSalonPhone(phone string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.salonPhones[phone] = true
}

func clone(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

var _ account.Repository = (*Repo)(nil)
