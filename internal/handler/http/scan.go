package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/handler/http/response"
)

type ScanHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	RecentScans(w http.ResponseWriter, r *http.Request)
}

type scanHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewScanHandler(attendanceService attendance.AttendanceService) ScanHandler {
	return &scanHandlerImpl{attendanceService: attendanceService}
}

// Scan reconciles one badge read. A new record answers 201, an update or a
// no-op answers 200.
func (h *scanHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Scan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.IsNew {
		response.Created(w, result.Message, result)
		return
	}
	response.SuccessWithMessage(w, result.Message, result)
}

func (h *scanHandlerImpl) RecentScans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	scans, err := h.attendanceService.RecentScans(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, scans)
}
