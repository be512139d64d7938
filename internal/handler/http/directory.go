package http

import (
	"net/http"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DirectoryHandler interface {
	Lookup(w http.ResponseWriter, r *http.Request)
}

type directoryHandlerImpl struct {
	directoryService directory.DirectoryService
}

func NewDirectoryHandler(directoryService directory.DirectoryService) DirectoryHandler {
	return &directoryHandlerImpl{directoryService: directoryService}
}

// Lookup resolves a badge code to its person. ?mode=barcode|qrcode applies the
// same type check as a scan.
func (h *directoryHandlerImpl) Lookup(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var (
		person directory.Person
		err    error
	)
	if mode := r.URL.Query().Get("mode"); mode != "" {
		person, err = h.directoryService.Resolve(r.Context(), code, directory.ScanMode(mode))
	} else {
		person, err = h.directoryService.FindByCode(r.Context(), code)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, directory.NewPersonResponse(person))
}
