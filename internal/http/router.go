package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/betterhouse/syndic/internal/assembly"
	"github.com/betterhouse/syndic/internal/cache"
	"github.com/betterhouse/syndic/internal/config"
	"github.com/betterhouse/syndic/internal/dashboard"
	httpmiddleware "github.com/betterhouse/syndic/internal/http/middleware"
	"github.com/betterhouse/syndic/internal/service"
	"github.com/betterhouse/syndic/internal/store"
)

type Handler struct {
	cfg           *config.Config
	store         *store.Store
	cache         cache.Cache
	pool          *pgxpool.Pool
	redis         *redis.Client
	authService   *service.AuthService
	evaluator     *assembly.Evaluator
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
}

// NewRouter devolve roteador configurado. pool e redisClient são
// opcionais; quando nil ficam fora do /ready.
func NewRouter(cfg *config.Config, st *store.Store, c cache.Cache, authService *service.AuthService, pool *pgxpool.Pool, redisClient *redis.Client) (http.Handler, error) {
	if cfg.Location == nil {
		return nil, errors.New("config sem fuso horário")
	}
	if st == nil || authService == nil {
		return nil, errors.New("store e authService são obrigatórios")
	}
	h := newHandler(cfg, st, c, authService, pool, redisClient)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)

		public.Route("/auth", func(auth chi.Router) {
			auth.Get("/profiles", h.Profiles)
			auth.Post("/login", h.Login)
		})
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(authService.JWT()))
		private.Use(httpmiddleware.UserRateLimit(h.authLimiter))
		private.Use(httpmiddleware.Viewer(authService, h.viewOptions))

		h.RegisterRoutes(private)
	})

	return r, nil
}

func newHandler(cfg *config.Config, st *store.Store, c cache.Cache, authService *service.AuthService, pool *pgxpool.Pool, redisClient *redis.Client) *Handler {
	if c == nil {
		c = cache.NoopCache{}
	}

	return &Handler{
		cfg:           cfg,
		store:         st,
		cache:         c,
		pool:          pool,
		redis:         redisClient,
		authService:   authService,
		evaluator:     assembly.NewEvaluator(cfg.MajorityRules),
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
	}
}

// RegisterRoutes monta as rotas que dependem da View no contexto.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.Me)
	r.Post("/auth/logout", h.Logout)
	r.Get("/dashboard", h.Dashboard)

	r.Route("/accounting", func(acc chi.Router) {
		acc.Get("/", h.Accounting)
		acc.Get("/summary", h.AccountingSummary)
		acc.Get("/balance", h.AccountingBalance)
	})

	r.Get("/property", h.Property)

	r.Route("/assemblies", func(ag chi.Router) {
		ag.Get("/", h.Assemblies)
		ag.Get("/{id}", h.Assembly)
	})

	r.Route("/maintenance", func(m chi.Router) {
		m.Get("/", h.Maintenance)
		m.Get("/{id}", h.Ticket)
	})

	r.Get("/providers", h.Providers)
	r.Get("/documents", h.Documents)
	r.Get("/communication", h.Communication)

	r.Route("/agenda", func(a chi.Router) {
		a.Get("/", h.Agenda)
		a.Get("/upcoming", h.AgendaUpcoming)
	})

	r.Group(func(syndic chi.Router) {
		syndic.Use(httpmiddleware.RequireSyndic)
		syndic.Get("/settings", h.Settings)
	})
}

func (h *Handler) viewOptions() dashboard.Options {
	return dashboard.Options{
		Location:  h.cfg.Location,
		Now:       h.cfg.Now,
		Evaluator: h.evaluator,
	}
}

// Health responde status simples.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready confere o snapshot carregado e, quando configurados, Postgres e Redis.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	details := map[string]any{}
	healthy := true

	if snap := h.store.Current(); snap == nil {
		details["snapshot"] = "não carregado"
		healthy = false
	} else {
		details["snapshot"] = snap.Version
	}

	if h.pool != nil {
		err := h.pool.Ping(ctx)
		details["db"] = errorString(err)
		healthy = healthy && err == nil
	}
	if h.redis != nil {
		err := h.redis.Ping(ctx).Err()
		details["redis"] = errorString(err)
		healthy = healthy && err == nil
	}

	if !healthy {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "dependências indisponíveis", details)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"ready": true, "checks": details})
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
