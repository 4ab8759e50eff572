// Package memory is an in-process implementation of the repository contracts.
// It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

// Store keeps every collection behind one lock. Records are copied on the way
// in and out so callers never share memory with the store.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	last     time.Time
	users    map[string]entity.User
	brands   map[string]entity.Brand
	vehicles map[string]entity.Vehicle
	assets   map[string]entity.CustomizationAsset
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		users:    map[string]entity.User{},
		brands:   map[string]entity.Brand{},
		vehicles: map[string]entity.Vehicle{},
		assets:   map[string]entity.CustomizationAsset{},
	}
}

func (s *Store) Users() repository.UserRepository          { return userRepo{s} }
func (s *Store) Brands() repository.BrandRepository        { return brandRepo{s} }
func (s *Store) Vehicles() repository.VehicleRepository    { return vehicleRepo{s} }
func (s *Store) Assets() repository.AssetRepository        { return assetRepo{s} }
func (s *Store) Analytics() repository.AnalyticsRepository { return analyticsRepo{s} }
func (s *Store) Ping(context.Context) error                { return nil }
func (s *Store) Close()                                    {}

// Truncate removes every record.
func (s *Store) Truncate(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = map[string]entity.User{}
	s.brands = map[string]entity.Brand{}
	s.vehicles = map[string]entity.Vehicle{}
	s.assets = map[string]entity.CustomizationAsset{}
	return nil
}

// stamp sets timestamps for a new record. Each call is strictly later than
// the previous one so createdAt ordering is stable.
// Callers must hold the write lock.
func (s *Store) stamp() time.Time {
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

var _ repository.Store = (*Store)(nil)

// users

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = r.s.stamp()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.s.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.UpdatedAt = r.s.stamp()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) Count(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

// brands

type brandRepo struct{ s *Store }

func (r brandRepo) List(context.Context) ([]*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Brand, 0, len(r.s.brands))
	for _, b := range r.s.brands {
		b := b
		out = append(out, &b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r brandRepo) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.brands[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r brandRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Brand, len(ids))
	for _, id := range ids {
		if b, ok := r.s.brands[id]; ok {
			out[id] = &b
		}
	}
	return out, nil
}

func (r brandRepo) GetByName(_ context.Context, name string) (*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.brands {
		if b.Name == name {
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r brandRepo) nameTaken(name, exceptID string) bool {
	for id, b := range r.s.brands {
		if id != exceptID && b.Name == name {
			return true
		}
	}
	return false
}

func (r brandRepo) Create(_ context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(b.Name, "") {
		return repository.ErrDuplicate
	}
	b.ID = uuid.NewString()
	b.CreatedAt = r.s.stamp()
	b.UpdatedAt = b.CreatedAt
	r.s.brands[b.ID] = *b
	return nil
}

func (r brandRepo) Update(_ context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.brands[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(b.Name, b.ID) {
		return repository.ErrDuplicate
	}
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = r.s.stamp()
	r.s.brands[b.ID] = *b
	return nil
}

func (r brandRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.brands[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.brands, id)
	return nil
}

// vehicles

type vehicleRepo struct{ s *Store }

func copyVehicle(v entity.Vehicle) *entity.Vehicle {
	if v.Customizations != nil {
		c := *v.Customizations
		if c.Colors != nil {
			colors := make(map[string]string, len(c.Colors))
			for k, val := range c.Colors {
				colors[k] = val
			}
			c.Colors = colors
		}
		v.Customizations = &c
	}
	return &v
}

func (r vehicleRepo) List(_ context.Context, f repository.VehicleFilter) ([]*entity.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Vehicle, 0, len(r.s.vehicles))
	for _, v := range r.s.vehicles {
		if f.BrandID != "" && v.BrandID != f.BrandID {
			continue
		}
		out = append(out, copyVehicle(v))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r vehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyVehicle(v), nil
}

func (r vehicleRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Vehicle, len(ids))
	for _, id := range ids {
		if v, ok := r.s.vehicles[id]; ok {
			out[id] = copyVehicle(v)
		}
	}
	return out, nil
}

func (r vehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v.ID = uuid.NewString()
	v.CreatedAt = r.s.stamp()
	v.UpdatedAt = v.CreatedAt
	r.s.vehicles[v.ID] = *copyVehicle(*v)
	return nil
}

func (r vehicleRepo) Update(_ context.Context, v *entity.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.vehicles[v.ID]
	if !ok {
		return repository.ErrNotFound
	}
	v.CreatedAt = existing.CreatedAt
	v.UpdatedAt = r.s.stamp()
	r.s.vehicles[v.ID] = *copyVehicle(*v)
	return nil
}

func (r vehicleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.vehicles, id)
	return nil
}

// assets

type assetRepo struct{ s *Store }

func copyAsset(a entity.CustomizationAsset) *entity.CustomizationAsset {
	a.Compatibility = append([]string{}, a.Compatibility...)
	return &a
}

func (r assetRepo) List(_ context.Context, f repository.AssetFilter) ([]*entity.CustomizationAsset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.CustomizationAsset, 0, len(r.s.assets))
	for _, a := range r.s.assets {
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		out = append(out, copyAsset(a))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r assetRepo) GetByID(_ context.Context, id string) (*entity.CustomizationAsset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.assets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyAsset(a), nil
}

func (r assetRepo) Create(_ context.Context, a *entity.CustomizationAsset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = r.s.stamp()
	a.UpdatedAt = a.CreatedAt
	r.s.assets[a.ID] = *copyAsset(*a)
	return nil
}

func (r assetRepo) Update(_ context.Context, a *entity.CustomizationAsset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.assets[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = r.s.stamp()
	r.s.assets[a.ID] = *copyAsset(*a)
	return nil
}

func (r assetRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.assets, id)
	return nil
}
