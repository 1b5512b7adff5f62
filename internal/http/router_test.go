package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"notecal/internal/index"
	"notecal/internal/service"
	"notecal/internal/service/mocks"
	"notecal/internal/storage"
)

func newTestDeps(t *testing.T, ctrl *gomock.Controller) (*Deps, *mocks.MockCalendarService) {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mockService := mocks.NewMockCalendarService(ctrl)
	return &Deps{
		CalendarService: mockService,
		DB:              db,
		Store:           index.NewStore(),
	}, mockService
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps, _ := newTestDeps(t, ctrl)
	if router := NewRouter(deps); router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps, mockService := newTestDeps(t, ctrl)
	mockService.EXPECT().
		MonthView(gomock.Any(), 2025, 1).
		Return(service.MonthView{Year: 2025, Month: 1}, nil).
		AnyTimes()
	mockService.EXPECT().
		EntriesOn(gomock.Any(), "2025-01-15").
		Return(nil, nil).
		AnyTimes()

	router := NewRouter(deps)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "GET month view",
			method:     http.MethodGet,
			path:       "/api/calendar/2025/1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET entries by date",
			method:     http.MethodGet,
			path:       "/api/entries?date=2025-01-15",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET entries without parameters",
			method:     http.MethodGet,
			path:       "/api/entries",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "GET health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET reindex method not allowed",
			method:     http.MethodGet,
			path:       "/api/reindex",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}
