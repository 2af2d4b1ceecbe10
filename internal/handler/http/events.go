package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shramik-labs/labour-backend-go/internal/handler/http/response"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/events"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/jwt"
)

// EventsHandler exposes the change feed over SSE
type EventsHandler interface {
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub        *events.Hub
	jwtService jwt.Service
}

func NewEventsHandler(hub *events.Hub, jwtService jwt.Service) EventsHandler {
	return &eventsHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
	}
}

type streamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetStreamToken mints a short-lived token for SSE connections
func (h *eventsHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	adminID := getAdminIDFromContext(r)
	if adminID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(adminID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, streamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes roster and ledger changes over SSE. The token travels as a
// query parameter because EventSource cannot set headers.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	adminID, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	labourEvents, cancelLabours := h.hub.Subscribe(events.TopicLabours)
	defer cancelLabours()
	attendanceEvents, cancelAttendance := h.hub.Subscribe(events.TopicAttendance)
	defer cancelAttendance()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"admin_id\":%q}\n\n", adminID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	writeEvent := func(event events.Event) {
		data, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, data)
		flusher.Flush()
	}

	for {
		select {
		case event, ok := <-labourEvents:
			if !ok {
				return
			}
			writeEvent(event)

		case event, ok := <-attendanceEvents:
			if !ok {
				return
			}
			writeEvent(event)

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
