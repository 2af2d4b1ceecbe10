package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shramik-labs/labour-backend-go/internal/domain/report"
	"github.com/shramik-labs/labour-backend-go/internal/handler/http/response"
)

// ReportHandler defines the report handler interface
type ReportHandler interface {
	LabourSummary(w http.ResponseWriter, r *http.Request)
	WageReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// LabourSummary aggregates one labour's attendance over a date range
func (h *reportHandlerImpl) LabourSummary(w http.ResponseWriter, r *http.Request) {
	labourID := chi.URLParam(r, "id")
	if labourID == "" {
		response.BadRequest(w, "Labour ID is required", nil)
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	result, err := h.reportService.LabourSummary(r.Context(), labourID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WageReport aggregates the whole roster over a date range
func (h *reportHandlerImpl) WageReport(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	result, err := h.reportService.WageReport(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
