package handlers

import (
	"encoding/json"
	"net/http"

	"notecal/internal/contextutil"
	"notecal/internal/index"
	"notecal/internal/service"
)

// EntriesHandler handles HTTP requests for entry lookups.
type EntriesHandler struct {
	calendarService service.CalendarService
}

// NewEntriesHandler creates a new EntriesHandler.
func NewEntriesHandler(calendarService service.CalendarService) *EntriesHandler {
	return &EntriesHandler{calendarService: calendarService}
}

// EntriesResponse represents the HTTP response payload for entry lookups.
type EntriesResponse struct {
	Entries []*index.Entry `json:"entries"`
	Count   int            `json:"count"`
}

// ServeHTTP handles GET /api/entries?date=YYYY-MM-DD and
// GET /api/entries?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *EntriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	q := r.URL.Query()
	date := q.Get("date")
	start := q.Get("start")
	end := q.Get("end")

	var (
		entries []*index.Entry
		err     error
	)
	switch {
	case date != "" && (start != "" || end != ""):
		logger.WarnContext(ctx, "conflicting query parameters", "date", date, "start", start, "end", end)
		writeError(w, http.StatusBadRequest, "Use either date or start/end, not both")
		return
	case date != "":
		entries, err = h.calendarService.EntriesOn(ctx, date)
	case start != "" && end != "":
		entries, err = h.calendarService.EntriesBetween(ctx, start, end)
	default:
		writeError(w, http.StatusBadRequest, "Missing date or start/end query parameters")
		return
	}
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to look up entries")
		return
	}

	if entries == nil {
		entries = []*index.Entry{}
	}
	resp := EntriesResponse{Entries: entries, Count: len(entries)}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
