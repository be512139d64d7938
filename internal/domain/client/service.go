package client

import "context"

// ClientService defines business logic for client operations
type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetClient(ctx context.Context, code string) (ClientResponse, error)
	ListClients(ctx context.Context, filter ClientFilter) (ListClientResponse, error)
	UpdateClient(ctx context.Context, req UpdateClientRequest) (ClientResponse, error)
	DeleteClient(ctx context.Context, code string) error
}
