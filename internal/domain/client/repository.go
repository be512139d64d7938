package client

import "context"

type ClientRepository interface {
	// Create inserts a new client; returns ErrClientCodeExists when the code is taken
	Create(ctx context.Context, newClient Client) (Client, error)

	GetByCode(ctx context.Context, code string) (Client, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter ClientFilter) ([]Client, int64, error)
	Update(ctx context.Context, updated Client) error
	Delete(ctx context.Context, code string) error
}
