package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
)

type clientRepositoryImpl struct {
	store *Store
}

func NewClientRepository(store *Store) client.ClientRepository {
	return &clientRepositoryImpl{store: store}
}

// Create implements client.ClientRepository.
func (r *clientRepositoryImpl) Create(ctx context.Context, newClient client.Client) (client.Client, error) {
	err := r.store.write(ctx, func() error {
		if _, exists := r.store.clients[newClient.Code]; exists {
			return client.ErrClientCodeExists
		}
		now := time.Now()
		if newClient.CreatedAt.IsZero() {
			newClient.CreatedAt = now
		}
		newClient.UpdatedAt = now
		r.store.clients[newClient.Code] = newClient
		return nil
	})
	if err != nil {
		return client.Client{}, err
	}
	return newClient, nil
}

// GetByCode implements client.ClientRepository.
func (r *clientRepositoryImpl) GetByCode(ctx context.Context, code string) (client.Client, error) {
	var found client.Client
	err := r.store.read(func() error {
		c, ok := r.store.clients[code]
		if !ok {
			return client.ErrClientNotFound
		}
		found = c
		return nil
	})
	return found, err
}

// ExistsByCode implements client.ClientRepository.
func (r *clientRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	_ = r.store.read(func() error {
		_, exists = r.store.clients[code]
		return nil
	})
	return exists, nil
}

// List implements client.ClientRepository. Results are ordered by code.
func (r *clientRepositoryImpl) List(ctx context.Context, filter client.ClientFilter) ([]client.Client, int64, error) {
	var matched []client.Client
	_ = r.store.read(func() error {
		for _, c := range r.store.clients {
			if filter.Matches(c) {
				matched = append(matched, c)
			}
		}
		return nil
	})

	sort.Slice(matched, func(i, j int) bool { return matched[i].Code < matched[j].Code })

	start, end := pagination.Bounds(len(matched), filter.Page, filter.Limit)
	return matched[start:end], int64(len(matched)), nil
}

// Update implements client.ClientRepository.
func (r *clientRepositoryImpl) Update(ctx context.Context, updated client.Client) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.clients[updated.Code]
		if !ok {
			return client.ErrClientNotFound
		}
		updated.CreatedAt = current.CreatedAt
		updated.UpdatedAt = time.Now()
		r.store.clients[updated.Code] = updated
		return nil
	})
}

// Delete implements client.ClientRepository.
func (r *clientRepositoryImpl) Delete(ctx context.Context, code string) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.clients[code]; !ok {
			return client.ErrClientNotFound
		}
		delete(r.store.clients, code)
		return nil
	})
}
