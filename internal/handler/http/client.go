package http

import (
	"encoding/json"
	"net/http"

	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ClientHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type clientHandlerImpl struct {
	clientService client.ClientService
}

func NewClientHandler(clientService client.ClientService) ClientHandler {
	return &clientHandlerImpl{clientService: clientService}
}

func (h *clientHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := client.ClientFilter{
		Service: optionalQuery(r, "service"),
		Status:  optionalQuery(r, "status"),
		Search:  optionalQuery(r, "search"),
	}
	filter.Page, filter.Limit = paginationQuery(r, 20)

	result, err := h.clientService.ListClients(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Clients, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
		Showing:    result.Showing,
	})
}

func (h *clientHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.clientService.GetClient(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *clientHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req client.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.clientService.CreateClient(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Client created successfully", result)
}

func (h *clientHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req client.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Code = chi.URLParam(r, "code")

	result, err := h.clientService.UpdateClient(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Client updated successfully", result)
}

func (h *clientHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clientService.DeleteClient(r.Context(), chi.URLParam(r, "code")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Client deleted successfully", nil)
}
