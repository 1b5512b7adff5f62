package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"notecal/internal/contextutil"
	"notecal/internal/service"
)

// CalendarHandler handles HTTP requests for month views.
type CalendarHandler struct {
	calendarService service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// ServeHTTP handles GET /api/calendar/{year}/{month}.
func (h *CalendarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		logger.WarnContext(ctx, "invalid year in path", "year", chi.URLParam(r, "year"))
		writeError(w, http.StatusBadRequest, "Year must be a number")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		logger.WarnContext(ctx, "invalid month in path", "month", chi.URLParam(r, "month"))
		writeError(w, http.StatusBadRequest, "Month must be a number")
		return
	}

	view, err := h.calendarService.MonthView(ctx, year, month)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to build month view")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
