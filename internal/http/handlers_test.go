package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	_ "time/tzdata"

	"github.com/go-chi/chi/v5"

	"github.com/betterhouse/syndic/internal/auth"
	"github.com/betterhouse/syndic/internal/cache"
	"github.com/betterhouse/syndic/internal/config"
	"github.com/betterhouse/syndic/internal/dashboard"
	httpmiddleware "github.com/betterhouse/syndic/internal/http/middleware"
	"github.com/betterhouse/syndic/internal/service"
	"github.com/betterhouse/syndic/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets++
	return nil
}

type fixture struct {
	cfg     *config.Config
	store   *store.Store
	cache   *memoryCache
	auth    *service.AuthService
	handler *Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Casablanca")
	if err != nil {
		t.Fatalf("timezone: %v", err)
	}
	snap, err := store.LoadSeed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{
		CacheTTL:        time.Minute,
		JWTSecret:       testSecret,
		JWTAccessTTL:    time.Hour,
		Location:        loc,
		ReferenceDate:   time.Date(2023, 11, 26, 12, 0, 0, 0, loc),
		RateLimitPublic: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		RateLimitAuth:   config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}
	st := store.NewStatic(snap)
	mc := newMemoryCache()
	authService := service.NewAuthService(st, auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL), mc)

	return &fixture{
		cfg:     cfg,
		store:   st,
		cache:   mc,
		auth:    authService,
		handler: newHandler(cfg, st, mc, authService, nil, nil),
	}
}

func requestBody(body any) *bytes.Buffer {
	if body == nil {
		return bytes.NewBuffer(nil)
	}
	b, _ := json.Marshal(body)
	return bytes.NewBuffer(b)
}

func withView(req *http.Request, f *fixture, userID string) *http.Request {
	snap := f.store.Current()
	user, err := snap.User(userID)
	if err != nil {
		panic(err)
	}
	view := dashboard.For(snap, user, f.handler.viewOptions())

	ctx := req.Context()
	ctx = context.WithValue(ctx, httpmiddleware.ContextKeySubject, user.ID)
	ctx = context.WithValue(ctx, httpmiddleware.ContextKeyRoles, []string{string(user.Role)})
	ctx = context.WithValue(ctx, httpmiddleware.ContextKeyAudience, auth.Audience)
	ctx = context.WithValue(ctx, httpmiddleware.ContextKeyView, view)
	ctx = context.WithValue(ctx, httpmiddleware.ContextKeySnapshot, snap)
	return req.WithContext(ctx)
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Data  json.RawMessage `json:"data"`
		Error *ErrorBody      `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope inválido: %v", err)
	}
	if env.Error != nil {
		t.Fatalf("erro inesperado: %s", env.Error.Message)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("data inválido: %v", err)
	}
}

func TestPageHandlers(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		user   string
		path   string
		status int
	}{
		{"me", "u2", "/me", http.StatusOK},
		{"dashboard-syndic", "u1", "/dashboard", http.StatusOK},
		{"dashboard-owner", "u2", "/dashboard", http.StatusOK},
		{"accounting", "u2", "/accounting", http.StatusOK},
		{"accounting-budget-owner", "u2", "/accounting?tab=budget", http.StatusOK},
		{"accounting-journal-owner", "u2", "/accounting?tab=journal", http.StatusForbidden},
		{"accounting-journal-syndic", "u1", "/accounting?tab=journal", http.StatusOK},
		{"accounting-tab-invalid", "u1", "/accounting?tab=caixa", http.StatusBadRequest},
		{"summary", "u2", "/accounting/summary", http.StatusOK},
		{"balance", "u1", "/accounting/balance", http.StatusOK},
		{"property", "u2", "/property", http.StatusOK},
		{"assemblies", "u2", "/assemblies", http.StatusOK},
		{"assembly", "u2", "/assemblies/ag1", http.StatusOK},
		{"assembly-missing", "u2", "/assemblies/ag9", http.StatusNotFound},
		{"maintenance", "u2", "/maintenance?tab=open", http.StatusOK},
		{"maintenance-tab-invalid", "u2", "/maintenance?tab=x", http.StatusBadRequest},
		{"ticket-visible", "u2", "/maintenance/t1", http.StatusOK},
		{"ticket-hidden", "u2", "/maintenance/t2", http.StatusNotFound},
		{"ticket-syndic", "u1", "/maintenance/t2", http.StatusOK},
		{"providers", "u2", "/providers", http.StatusOK},
		{"documents", "u2", "/documents?tab=ag", http.StatusOK},
		{"documents-tab-invalid", "u2", "/documents?tab=secret", http.StatusBadRequest},
		{"communication", "u3", "/communication", http.StatusOK},
		{"agenda", "u2", "/agenda?year=2023&month=11", http.StatusOK},
		{"agenda-month-invalid", "u2", "/agenda?month=13", http.StatusBadRequest},
		{"agenda-year-invalid", "u2", "/agenda?year=dois", http.StatusBadRequest},
		{"agenda-category-invalid", "u2", "/agenda?category=Festa", http.StatusBadRequest},
		{"upcoming", "u2", "/agenda/upcoming?limit=3", http.StatusOK},
		{"upcoming-invalid", "u2", "/agenda/upcoming?limit=-1", http.StatusBadRequest},
		{"settings-owner", "u2", "/settings", http.StatusForbidden},
		{"settings-syndic", "u1", "/settings", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req = withView(req, f, tc.user)
			rec := httptest.NewRecorder()

			r := chi.NewRouter()
			f.handler.RegisterRoutes(r)
			r.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected %d got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPageHandlersWithoutView(t *testing.T) {
	f := newFixture(t)
	r := chi.NewRouter()
	f.handler.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestOwnerMaintenanceHidesPrivateTickets(t *testing.T) {
	f := newFixture(t)
	r := chi.NewRouter()
	f.handler.RegisterRoutes(r)

	req := withView(httptest.NewRequest(http.MethodGet, "/maintenance", nil), f, "u2")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var page struct {
		Tickets []struct {
			ID string `json:"id"`
		} `json:"tickets"`
	}
	decodeData(t, rec, &page)
	for _, ticket := range page.Tickets {
		if ticket.ID == "t2" {
			t.Fatalf("ticket privado t2 exposto ao coproprietário")
		}
	}
	if len(page.Tickets) != 3 {
		t.Fatalf("expected 3 tickets got %d", len(page.Tickets))
	}
}

func TestDashboardIsCachedPerSnapshot(t *testing.T) {
	f := newFixture(t)
	r := chi.NewRouter()
	f.handler.RegisterRoutes(r)

	for i := 0; i < 2; i++ {
		req := withView(httptest.NewRequest(http.MethodGet, "/dashboard", nil), f, "u1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
		if rec.Header().Get("ETag") == "" {
			t.Fatalf("ETag ausente")
		}
	}
	if f.cache.sets != 1 {
		t.Fatalf("expected 1 cache write got %d", f.cache.sets)
	}
}

func TestETagVariesByViewerURLAndDay(t *testing.T) {
	f := newFixture(t)
	r := chi.NewRouter()
	f.handler.RegisterRoutes(r)

	etag := func(path, userID string) string {
		req := withView(httptest.NewRequest(http.MethodGet, path, nil), f, userID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
		if got := rec.Header().Get("Cache-Control"); got != "private, no-cache" {
			t.Fatalf("expected private cache-control got %q", got)
		}
		return rec.Header().Get("ETag")
	}

	syndic := etag("/dashboard", "u1")
	if syndic != etag("/dashboard", "u1") {
		t.Fatalf("expected stable etag for same viewer")
	}
	if syndic == etag("/dashboard", "u2") {
		t.Fatalf("expected distinct etag per viewer")
	}
	if etag("/agenda?year=2023&month=11", "u2") == etag("/agenda?year=2023&month=12", "u2") {
		t.Fatalf("expected distinct etag per query")
	}

	f.cfg.ReferenceDate = f.cfg.ReferenceDate.AddDate(0, 0, 1)
	if syndic == etag("/dashboard", "u1") {
		t.Fatalf("expected distinct etag per day")
	}
}

func TestAgendaGridPayload(t *testing.T) {
	f := newFixture(t)
	r := chi.NewRouter()
	f.handler.RegisterRoutes(r)

	req := withView(httptest.NewRequest(http.MethodGet, "/agenda?year=2024&month=2", nil), f, "u1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var page struct {
		Grid struct {
			Days    int `json:"days"`
			Leading int `json:"leading"`
			Cells   []struct {
				Day int `json:"day"`
			} `json:"cells"`
		} `json:"grid"`
		Previous dashboard.MonthRef `json:"previous"`
		Next     dashboard.MonthRef `json:"next"`
	}
	decodeData(t, rec, &page)

	if page.Grid.Days != 29 {
		t.Fatalf("expected 29 days got %d", page.Grid.Days)
	}
	if len(page.Grid.Cells)%7 != 0 {
		t.Fatalf("grid com %d células", len(page.Grid.Cells))
	}
	if page.Previous != (dashboard.MonthRef{Year: 2024, Month: 1}) || page.Next != (dashboard.MonthRef{Year: 2024, Month: 3}) {
		t.Fatalf("navegação inesperada: %+v %+v", page.Previous, page.Next)
	}
}

func requestBodyRaw(raw string) *bytes.Buffer {
	return bytes.NewBufferString(raw)
}
