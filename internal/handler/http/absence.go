package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AbsenceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UploadJustification(w http.ResponseWriter, r *http.Request)
	DownloadJustification(w http.ResponseWriter, r *http.Request)
}

type absenceHandlerImpl struct {
	absenceService absence.AbsenceService
}

func NewAbsenceHandler(absenceService absence.AbsenceService) AbsenceHandler {
	return &absenceHandlerImpl{absenceService: absenceService}
}

func (h *absenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := absence.AbsenceFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Type:       optionalQuery(r, "type"),
		Status:     optionalQuery(r, "status"),
	}
	filter.Page, filter.Limit = paginationQuery(r, 20)

	result, err := h.absenceService.ListAbsences(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Absences, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
		Showing:    result.Showing,
	})
}

func (h *absenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.absenceService.GetAbsence(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Create records an absence. An approved absence covering today is applied to
// the employee status immediately.
func (h *absenceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req absence.CreateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.absenceService.CreateAbsence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Absence created successfully", result)
}

func (h *absenceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req absence.UpdateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.absenceService.UpdateAbsence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Absence updated successfully", result)
}

func (h *absenceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.absenceService.DeleteAbsence(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Absence deleted successfully", nil)
}

// UploadJustification stores the "file" form field and links it to the absence.
func (h *absenceHandlerImpl) UploadJustification(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Justification file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	result, err := h.absenceService.AttachJustification(r.Context(), absence.AttachJustificationRequest{
		ID:         chi.URLParam(r, "id"),
		File:       file,
		FileHeader: fileHeader,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Justification uploaded successfully", result)
}

func (h *absenceHandlerImpl) DownloadJustification(w http.ResponseWriter, r *http.Request) {
	doc, err := h.absenceService.OpenJustification(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer doc.Body.Close()

	body, err := io.ReadAll(doc.Body)
	if err != nil {
		slog.Error("Failed to read justification file", "filename", doc.Filename, "error", err)
		response.InternalServerError(w, "Failed to read justification file")
		return
	}
	response.File(w, doc.ContentType, doc.Filename, body)
}
