package http

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/betterhouse/syndic/internal/cache"
	"github.com/betterhouse/syndic/internal/dashboard"
	httpmiddleware "github.com/betterhouse/syndic/internal/http/middleware"
	"github.com/betterhouse/syndic/internal/store"
)

const (
	defaultUpcoming = 5
	maxUpcoming     = 50
)

// Dashboard devolve o painel do papel, em cache por snapshot e dia.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}

	key := cache.Key(snap.Version, "dashboard", view.User().ID, h.dayKey())
	page, err := cache.Remember(r.Context(), h.cache, key, h.cfg.CacheTTL, func() (dashboard.DashboardPage, error) {
		return view.Dashboard(), nil
	})
	if err != nil {
		h.writeViewError(w, err)
		return
	}
	WriteJSONMeta(w, http.StatusOK, page, h.metaOf(r, view, snap))
}

func (h *Handler) Accounting(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	page, err := view.Accounting(dashboard.Selection{
		Tab:    q.Get("tab"),
		Type:   q.Get("type"),
		Search: q.Get("q"),
	})
	if err != nil {
		h.writeViewError(w, err)
		return
	}
	WriteJSONMeta(w, http.StatusOK, page, h.metaOf(r, view, snap))
}

func (h *Handler) AccountingSummary(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	WriteJSONMeta(w, http.StatusOK, view.Summary(), h.metaOf(r, view, snap))
}

func (h *Handler) AccountingBalance(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	WriteJSONMeta(w, http.StatusOK, view.Balance(), h.metaOf(r, view, snap))
}

func (h *Handler) Property(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	WriteJSONMeta(w, http.StatusOK, view.Property(), h.metaOf(r, view, snap))
}

func (h *Handler) Assemblies(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	WriteJSONMeta(w, http.StatusOK, map[string]any{"assemblies": view.Assemblies()}, h.metaOf(r, view, snap))
}

func (h *Handler) Assembly(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	detail, err := view.Assembly(chi.URLParam(r, "id"))
	if err != nil {
		h.writeViewError(w, err)
		return
	}
	WriteJSONMeta(w, http.StatusOK, detail, h.metaOf(r, view, snap))
}

func (h *Handler) Maintenance(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	tickets, err := view.Maintenance(dashboard.Selection{Tab: q.Get("tab"), Search: q.Get("q")})
	if err != nil {
		h.writeViewError(w, err)
		return
	}
	WriteJSONMeta(w, http.StatusOK, map[string]any{"tickets": tickets}, h.metaOf(r, view, snap))
}

func (h *Handler) Ticket(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	detail, err := view.Ticket(chi.URLParam(r, "id"))
	if err != nil {
		h.writeViewError(w, err)
		return
	}
	WriteJSONMeta(w, http.StatusOK, detail, h.metaOf(r, view, snap))
}

func (h *Handler) Providers(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	WriteJSONMeta(w, http.StatusOK, view.Providers(), h.metaOf(r, view, snap))
}

func (h *Handler) Documents(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	docs, err := view.Documents(dashboard.Selection{Tab: q.Get("tab"), Search: q.Get("q")})
	if err != nil {
		h.writeViewError(w, err)
		return
	}
	WriteJSONMeta(w, http.StatusOK, map[string]any{"documents": docs}, h.metaOf(r, view, snap))
}

func (h *Handler) Communication(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	WriteJSONMeta(w, http.StatusOK, view.Communication(), h.metaOf(r, view, snap))
}

// Agenda devolve a grade mensal; mês e ano ausentes usam o mês corrente.
func (h *Handler) Agenda(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	year, err := optionalInt(q.Get("year"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "year inválido", nil)
		return
	}
	month, err := optionalInt(q.Get("month"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "month inválido", nil)
		return
	}

	sel := dashboard.Selection{Year: year, Month: time.Month(month), Category: q.Get("category")}
	key := cache.Key(snap.Version, "agenda", view.User().ID, h.dayKey(), q.Get("year"), q.Get("month"), strings.TrimSpace(q.Get("category")))
	page, err := cache.Remember(r.Context(), h.cache, key, h.cfg.CacheTTL, func() (dashboard.AgendaPage, error) {
		return view.Agenda(sel)
	})
	if err != nil {
		h.writeViewError(w, err)
		return
	}
	WriteJSONMeta(w, http.StatusOK, page, h.metaOf(r, view, snap))
}

func (h *Handler) AgendaUpcoming(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	limit, err := optionalInt(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "limit inválido", nil)
		return
	}
	if limit == 0 {
		limit = defaultUpcoming
	}
	if limit > maxUpcoming {
		limit = maxUpcoming
	}
	WriteJSONMeta(w, http.StatusOK, map[string]any{"events": view.Upcoming(limit)}, h.metaOf(r, view, snap))
}

func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	view, snap, ok := h.requireView(w, r)
	if !ok {
		return
	}
	page, err := view.Settings()
	if err != nil {
		h.writeViewError(w, err)
		return
	}
	WriteJSONMeta(w, http.StatusOK, page, h.metaOf(r, view, snap))
}

func (h *Handler) requireView(w http.ResponseWriter, r *http.Request) (dashboard.View, *store.Snapshot, bool) {
	view := httpmiddleware.GetView(r.Context())
	snap := httpmiddleware.GetSnapshot(r.Context())
	if view == nil || snap == nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "perfil não resolvido", nil)
		return nil, nil, false
	}
	return view, snap, true
}

func (h *Handler) writeViewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrInvalidSelection):
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, dashboard.ErrForbidden):
		WriteError(w, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, dashboard.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		log.Error().Err(err).Msg("falha ao montar visão")
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
	}
}

// dayKey separa entradas de cache por dia local; painel e agenda
// dependem da data corrente.
func (h *Handler) dayKey() string {
	return h.cfg.Now().In(h.cfg.Location).Format("2006-01-02")
}

// metaOf deriva o ETag da versão, do usuário, do dia local e da URL,
// pois o corpo muda com cada um deles.
func (h *Handler) metaOf(r *http.Request, view dashboard.View, snap *store.Snapshot) *Meta {
	sum := sha256.Sum256([]byte(snap.Version + "|" + view.User().ID + "|" + h.dayKey() + "|" + r.URL.RequestURI()))
	return &Meta{
		SnapshotVersion: snap.Version,
		LoadedAt:        snap.LoadedAt,
		ETag:            `W/"` + hex.EncodeToString(sum[:16]) + `"`,
	}
}

func optionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
