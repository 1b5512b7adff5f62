package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notecal/internal/handlers"
	"notecal/internal/index"
	"notecal/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	CalendarService service.CalendarService
	DB              *sql.DB
	Store           *index.Store
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	calendarHandler := handlers.NewCalendarHandler(deps.CalendarService)
	entriesHandler := handlers.NewEntriesHandler(deps.CalendarService)
	reindexHandler := handlers.NewReindexHandler(deps.CalendarService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Store)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/calendar/{year}/{month}", calendarHandler)
		r.Method(http.MethodGet, "/entries", entriesHandler)
		r.Method(http.MethodPost, "/reindex", reindexHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
