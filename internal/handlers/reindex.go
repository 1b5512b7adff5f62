package handlers

import (
	"encoding/json"
	"net/http"

	"notecal/internal/contextutil"
	"notecal/internal/service"
)

// ReindexHandler handles HTTP requests for full vault reindexing.
type ReindexHandler struct {
	calendarService service.CalendarService
}

// NewReindexHandler creates a new ReindexHandler.
func NewReindexHandler(calendarService service.CalendarService) *ReindexHandler {
	return &ReindexHandler{calendarService: calendarService}
}

// ReindexResponse represents the HTTP response payload for reindexing.
type ReindexResponse struct {
	FilesScanned   int `json:"files_scanned"`
	EntriesIndexed int `json:"entries_indexed"`
	Errors         int `json:"errors"`
}

// ServeHTTP handles POST /api/reindex.
func (h *ReindexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	stats, err := h.calendarService.Reindex(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to reindex vault")
		return
	}

	resp := ReindexResponse{
		FilesScanned:   stats.FilesScanned,
		EntriesIndexed: stats.EntriesIndexed,
		Errors:         stats.Errors,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
