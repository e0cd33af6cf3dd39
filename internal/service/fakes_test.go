package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"unitly-be/internal/entities"
	"unitly-be/internal/repository"
)

var fixedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type fakeUserRepo struct {
	mu       sync.Mutex
	accounts map[string]*entities.Account
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{accounts: make(map[string]*entities.Account)}
}

func (f *fakeUserRepo) Create(_ context.Context, email, passwordHash string, name *string) (*entities.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			return nil, repository.ErrConflict
		}
	}
	a := &entities.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    fixedAt,
		UpdatedAt:    fixedAt,
	}
	f.accounts[a.ID] = a
	return a, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

type fakeUnitRepo struct {
	mu      sync.Mutex
	units   map[string]*entities.Unit
	finds   int
	upserts int
}

func newFakeUnitRepo(units ...*entities.Unit) *fakeUnitRepo {
	f := &fakeUnitRepo{units: make(map[string]*entities.Unit)}
	for _, u := range units {
		f.units[u.UCUMCode] = u
	}
	return f
}

func (f *fakeUnitRepo) Create(_ context.Context, code, title string) (*entities.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.units[code]; ok {
		return nil, repository.ErrConflict
	}
	u := &entities.Unit{UCUMCode: code, Title: title, CreatedAt: fixedAt, UpdatedAt: fixedAt}
	f.units[code] = u
	return u, nil
}

func (f *fakeUnitRepo) FindByCode(_ context.Context, code string) (*entities.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	if u, ok := f.units[code]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUnitRepo) List(_ context.Context, approvedOnly bool) ([]*entities.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entities.Unit{}
	for _, u := range f.units {
		if approvedOnly && !u.Approved {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UCUMCode < out[j].UCUMCode })
	return out, nil
}

func (f *fakeUnitRepo) SetApproved(_ context.Context, code string, approved bool) (*entities.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.units[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Approved = approved
	copied := *u
	return &copied, nil
}

func (f *fakeUnitRepo) Upsert(_ context.Context, units []*entities.Unit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	for _, u := range units {
		f.units[u.UCUMCode] = u
	}
	return nil
}
