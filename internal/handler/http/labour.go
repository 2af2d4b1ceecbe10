package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/handler/http/response"
)

// LabourHandler defines the roster handler interface
type LabourHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type labourHandlerImpl struct {
	labourService labour.LabourService
}

func NewLabourHandler(labourService labour.LabourService) LabourHandler {
	return &labourHandlerImpl{labourService: labourService}
}

// Create registers a new labour on the roster
func (h *labourHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req labour.CreateLabourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.labourService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Labour created", result)
}

// Get returns one labour by id
func (h *labourHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Labour ID is required", nil)
		return
	}

	result, err := h.labourService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update edits an existing labour; omitted fields keep their value
func (h *labourHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Labour ID is required", nil)
		return
	}

	var req labour.UpdateLabourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.labourService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Labour updated", result)
}

// Delete removes a labour; their attendance history is voided, not dropped
func (h *labourHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	adminID := getAdminIDFromContext(r)
	if adminID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Labour ID is required", nil)
		return
	}

	if err := h.labourService.Delete(r.Context(), id, adminID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Labour deleted", nil)
}

// List returns the roster with optional status/category/search filters
func (h *labourHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := labour.LabourFilter{
		Status:     r.URL.Query().Get("status"),
		CategoryID: r.URL.Query().Get("category_id"),
		Search:     r.URL.Query().Get("search"),
	}

	result, err := h.labourService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
