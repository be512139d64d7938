package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/pkg/codegen"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

type ClientServiceImpl struct {
	clientRepo client.ClientRepository
	codes      *codegen.Generator
}

func NewClientService(clientRepo client.ClientRepository, codes *codegen.Generator) client.ClientService {
	return &ClientServiceImpl{
		clientRepo: clientRepo,
		codes:      codes,
	}
}

func (s *ClientServiceImpl) CreateClient(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	code, err := s.codes.Generate(ctx, client.CodePrefix, s.clientRepo.ExistsByCode)
	if err != nil {
		return client.ClientResponse{}, fmt.Errorf("failed to generate client code: %w", err)
	}

	now := time.Now()
	created, err := s.clientRepo.Create(ctx, client.Client{
		Code:          code,
		Name:          req.Name,
		Service:       req.Service,
		Details:       req.Details,
		Email:         req.Email,
		Phone:         req.Phone,
		ArrivalDate:   req.Arrival,
		DepartureDate: req.Departure,
		Status:        client.Status(req.Status),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return client.ClientResponse{}, fmt.Errorf("failed to create client: %w", err)
	}

	slog.Info("Client created", "code", created.Code, "service", created.Service)
	return client.NewClientResponse(created), nil
}

func (s *ClientServiceImpl) GetClient(ctx context.Context, code string) (client.ClientResponse, error) {
	c, err := s.clientRepo.GetByCode(ctx, code)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.NewClientResponse(c), nil
}

func (s *ClientServiceImpl) ListClients(ctx context.Context, filter client.ClientFilter) (client.ListClientResponse, error) {
	if err := filter.Validate(); err != nil {
		return client.ListClientResponse{}, err
	}

	clients, total, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		return client.ListClientResponse{}, fmt.Errorf("failed to list clients: %w", err)
	}

	items := make([]client.ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, client.NewClientResponse(c))
	}

	totalPages, showing := pagination.Window(total, filter.Page, filter.Limit)
	return client.ListClientResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Clients:    items,
	}, nil
}

// UpdateClient applies a partial update. An empty date string clears the
// stored date.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, req client.UpdateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	c, err := s.clientRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return client.ClientResponse{}, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Service != nil {
		c.Service = *req.Service
	}
	if req.Details != nil {
		c.Details = *req.Details
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Status != nil {
		c.Status = client.Status(*req.Status)
	}
	if req.ArrivalDate != nil {
		c.ArrivalDate = optionalDate(*req.ArrivalDate)
	}
	if req.DepartureDate != nil {
		c.DepartureDate = optionalDate(*req.DepartureDate)
	}
	if err := client.CheckStay(c.ArrivalDate, c.DepartureDate); err != nil {
		return client.ClientResponse{}, err
	}
	c.UpdatedAt = time.Now()

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return client.ClientResponse{}, fmt.Errorf("failed to update client: %w", err)
	}
	return client.NewClientResponse(c), nil
}

func (s *ClientServiceImpl) DeleteClient(ctx context.Context, code string) error {
	if err := s.clientRepo.Delete(ctx, code); err != nil {
		return err
	}
	slog.Info("Client deleted", "code", code)
	return nil
}

func optionalDate(value string) *time.Time {
	if t, ok := validator.IsValidDate(value); ok {
		return &t
	}
	return nil
}
