package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/betterhouse/syndic/internal/auth"
	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/dashboard"
	"github.com/betterhouse/syndic/internal/service"
	"github.com/betterhouse/syndic/internal/store"
)

const (
	ContextKeyView     contextKey = "view"
	ContextKeySnapshot contextKey = "snapshot"
)

// ViewerResolver resolve o usuário do token contra o snapshot vigente.
type ViewerResolver interface {
	Resolve(ctx context.Context, claims *auth.Claims) (*store.Snapshot, copro.User, error)
}

// Viewer escolhe a variante de dashboard.View uma única vez por
// requisição; os handlers não voltam a conferir o papel.
func Viewer(resolver ViewerResolver, options func() dashboard.Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap, user, err := resolver.Resolve(r.Context(), GetClaims(r.Context()))
			if err != nil {
				status, code, message := viewerErrorStatus(err)
				if status == http.StatusInternalServerError {
					log.Error().Err(err).Msg("falha ao resolver perfil")
				}
				writeError(w, status, code, message)
				return
			}

			view := dashboard.For(snap, user, options())
			ctx := context.WithValue(r.Context(), ContextKeyView, view)
			ctx = context.WithValue(ctx, ContextKeySnapshot, snap)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func viewerErrorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrUnknownProfile), errors.Is(err, service.ErrSessionRevoked):
		return http.StatusUnauthorized, "AUTH", err.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "papel do token não confere"
	case errors.Is(err, service.ErrNoSnapshot):
		return http.StatusServiceUnavailable, "INTERNAL", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL", "erro interno"
	}
}

// GetView recupera a visão montada pelo middleware Viewer.
func GetView(ctx context.Context) dashboard.View {
	val, _ := ctx.Value(ContextKeyView).(dashboard.View)
	return val
}

// GetSnapshot recupera o snapshot usado para montar a visão.
func GetSnapshot(ctx context.Context) *store.Snapshot {
	val, _ := ctx.Value(ContextKeySnapshot).(*store.Snapshot)
	return val
}
