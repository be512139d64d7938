package http

import (
	"net/http"
	"strconv"

	"github.com/gestipresence/presence-backend-go/internal/domain/badge"
	"github.com/gestipresence/presence-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BadgeHandler interface {
	Render(w http.ResponseWriter, r *http.Request)
}

type badgeHandlerImpl struct {
	badgeService badge.BadgeService
}

func NewBadgeHandler(badgeService badge.BadgeService) BadgeHandler {
	return &badgeHandlerImpl{badgeService: badgeService}
}

// Render answers GET /badges/{code}?format=qrcode|barcode&size=N with a PNG.
// download=1 switches to an attachment.
func (h *badgeHandlerImpl) Render(w http.ResponseWriter, r *http.Request) {
	req := badge.RenderRequest{
		Code:   chi.URLParam(r, "code"),
		Format: r.URL.Query().Get("format"),
	}
	if s := r.URL.Query().Get("size"); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil {
			response.BadRequest(w, "size must be a number", nil)
			return
		}
		req.Size = size
	}

	b, err := h.badgeService.Render(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if r.URL.Query().Get("download") == "1" {
		response.File(w, b.ContentType, b.Filename, b.Image)
		return
	}
	response.Image(w, b.ContentType, b.Image)
}
