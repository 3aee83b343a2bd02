package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/betterhouse/syndic/internal/http/middleware"
	"github.com/betterhouse/syndic/internal/service"
)

// Profiles lista os perfis do seletor de login.
func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.authService.Profiles()
	if err != nil {
		h.handleAuthError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

// Login emite o token do perfil escolhido, sem senha.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"user_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if strings.TrimSpace(payload.UserID) == "" {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "user_id é obrigatório", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), payload.UserID)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	h.writeLoginSuccess(w, result)
}

// Logout revoga o jti do token corrente.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), httpmiddleware.GetClaims(r.Context())); err != nil {
		log.Error().Err(err).Msg("falha ao revogar sessão")
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível encerrar a sessão", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me devolve o perfil resolvido pelo middleware Viewer.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	view := httpmiddleware.GetView(r.Context())
	snap := httpmiddleware.GetSnapshot(r.Context())
	if view == nil || snap == nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "perfil não resolvido", nil)
		return
	}

	user := view.User()
	WriteJSON(w, http.StatusOK, map[string]any{
		"user":         user,
		"roles":        httpmiddleware.GetRoles(r.Context()),
		"lot_ids":      snap.OwnedLotIDs(user.ID),
		"building_ids": snap.UserBuildingIDs(user.ID),
	})
}

func (h *Handler) handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownProfile):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, service.ErrNoSnapshot):
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", err.Error(), nil)
	default:
		log.Error().Err(err).Msg("falha ao autenticar")
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro ao autenticar", nil)
	}
}

func (h *Handler) writeLoginSuccess(w http.ResponseWriter, result *service.LoginResult) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"access_token": result.AccessToken,
		"expires_at":   result.ExpiresAt,
		"user":         result.User,
	})
}
