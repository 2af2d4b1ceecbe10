package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/handler/http/response"
)

// AttendanceHandler defines the attendance ledger handler interface
type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	BulkMark(w http.ResponseWriter, r *http.Request)
	Void(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	ListRange(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

// getAdminIDFromContext extracts admin_id from JWT context
func getAdminIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if adminID, ok := claims["admin_id"].(string); ok {
		return adminID
	}
	return ""
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// Mark records one labour's attendance for a day
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), req, time.Now().In(h.loc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked", result)
}

// BulkMark records attendance for many labours on one day
func (h *attendanceHandlerImpl) BulkMark(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.BulkMark(r.Context(), req, time.Now().In(h.loc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance saved", result)
}

// Void retires a record from payroll while keeping it for audit
func (h *attendanceHandlerImpl) Void(w http.ResponseWriter, r *http.Request) {
	adminID := getAdminIDFromContext(r)
	if adminID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	if err := h.attendanceService.Void(r.Context(), recordID, adminID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record voided", nil)
}

// ListByDate returns records for one day; include_voided=true adds audit rows
func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().In(h.loc).Format("2006-01-02")
	}
	includeVoided := getBoolQueryParam(r, "include_voided", false)

	records, err := h.attendanceService.RecordsForDate(r.Context(), date, includeVoided)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListRange returns non-voided records in an inclusive date range
func (h *attendanceHandlerImpl) ListRange(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	records, err := h.attendanceService.RecordsInRange(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
