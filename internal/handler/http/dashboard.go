package http

import (
	"net/http"
	"time"

	"github.com/shramik-labs/labour-backend-go/internal/domain/dashboard"
	"github.com/shramik-labs/labour-backend-go/internal/handler/http/response"
)

// DashboardHandler defines the dashboard aggregation handler interface
type DashboardHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	DailySummary(w http.ResponseWriter, r *http.Request)
	MonthlyPayroll(w http.ResponseWriter, r *http.Request)
	AttendanceTrend(w http.ResponseWriter, r *http.Request)
	CostTrend(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	loc              *time.Location
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, loc *time.Location) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		loc:              loc,
	}
}

// Overview returns the combined dashboard for today and the current month
func (h *dashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Overview(r.Context(), time.Now().In(h.loc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DailySummary returns marked/total/pending for a day (defaults to today)
func (h *dashboardHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().In(h.loc).Format("2006-01-02")
	}

	result, err := h.dashboardService.DailySummary(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlyPayroll returns total wage cost for a month (defaults to current)
func (h *dashboardHandlerImpl) MonthlyPayroll(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().In(h.loc).Format("2006-01")
	}

	result, err := h.dashboardService.MonthlyPayrollTotal(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AttendanceTrend returns the last N days of attendance counts (default 7)
func (h *dashboardHandlerImpl) AttendanceTrend(w http.ResponseWriter, r *http.Request) {
	days := getIntQueryParam(r, "days", 7)

	result, err := h.dashboardService.AttendanceTrend(r.Context(), days, time.Now().In(h.loc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CostTrend returns the last N days of wage cost (default 7)
func (h *dashboardHandlerImpl) CostTrend(w http.ResponseWriter, r *http.Request) {
	days := getIntQueryParam(r, "days", 7)

	result, err := h.dashboardService.CostTrend(r.Context(), days, time.Now().In(h.loc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
