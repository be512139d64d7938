package http

import (
	"log/slog"
	"net/http"

	"github.com/gestipresence/presence-backend-go/internal/domain/report"
	"github.com/gestipresence/presence-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Export streams a dataset as csv, json or xlsx.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		Dataset: chi.URLParam(r, "dataset"),
		Format:  r.URL.Query().Get("format"),
		Date:    r.URL.Query().Get("date"),
	}

	export, err := h.reportService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Report exported", "dataset", req.Dataset, "format", req.Format, "bytes", len(export.Body))
	response.File(w, export.ContentType, export.Filename, export.Body)
}
