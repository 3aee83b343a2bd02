package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/betterhouse/syndic/internal/auth"
	"github.com/betterhouse/syndic/internal/cache"
	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/store"
)

var (
	// ErrUnknownProfile indica perfil inexistente no snapshot atual.
	ErrUnknownProfile = errors.New("perfil desconhecido")
	// ErrSessionRevoked indica token encerrado por logout.
	ErrSessionRevoked = errors.New("sessão encerrada")
	// ErrNoSnapshot indica que nenhum snapshot foi carregado ainda.
	ErrNoSnapshot = errors.New("snapshot indisponível")
)

type snapshotReader interface {
	Current() *store.Snapshot
}

// Profile é uma entrada do seletor de perfis.
type Profile struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Role   copro.Role `json:"role"`
	Email  string     `json:"email,omitempty"`
	LotIDs []string   `json:"lot_ids"`
}

// LoginResult agrega o token emitido e o perfil escolhido.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenID     string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        Profile   `json:"user"`
}

// AuthService resolve perfis do snapshot e emite tokens de sessão.
// Não existe verificação de credenciais.
type AuthService struct {
	store    snapshotReader
	jwt      *auth.JWTManager
	sessions cache.Cache
	now      func() time.Time
}

// NewAuthService cria o serviço; sessions guarda os jti revogados e
// pode ser cache.NoopCache, caso em que o logout é apenas do cliente.
func NewAuthService(st snapshotReader, jwtMgr *auth.JWTManager, sessions cache.Cache) *AuthService {
	if sessions == nil {
		sessions = cache.NoopCache{}
	}
	return &AuthService{store: st, jwt: jwtMgr, sessions: sessions, now: time.Now}
}

// JWT expõe o gerenciador para o middleware de autenticação.
func (s *AuthService) JWT() *auth.JWTManager {
	return s.jwt
}

func (s *AuthService) snapshot() (*store.Snapshot, error) {
	snap := s.store.Current()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Profiles lista os usuários do snapshot, síndico primeiro.
func (s *AuthService) Profiles() ([]Profile, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	profiles := make([]Profile, 0, len(snap.Users))
	for _, u := range snap.Users {
		if u.IsSyndic() {
			profiles = append(profiles, toProfile(snap, u))
		}
	}
	for _, u := range snap.Users {
		if !u.IsSyndic() {
			profiles = append(profiles, toProfile(snap, u))
		}
	}
	return profiles, nil
}

// Login emite um token para o perfil escolhido.
func (s *AuthService) Login(ctx context.Context, userID string) (*LoginResult, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	user, err := snap.User(strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnknownProfile
		}
		return nil, err
	}

	token, jti, err := s.jwt.GenerateAccessToken(user.ID, auth.Audience, []string{string(user.Role)})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login por seletor de perfil")

	return &LoginResult{
		AccessToken: token,
		TokenID:     jti,
		ExpiresAt:   s.now().UTC().Add(s.jwt.AccessTTL()),
		User:        toProfile(snap, user),
	}, nil
}

// Resolve devolve o usuário atual do token. O papel do token precisa
// coincidir com o papel no snapshot vigente.
func (s *AuthService) Resolve(ctx context.Context, claims *auth.Claims) (*store.Snapshot, copro.User, error) {
	if claims == nil {
		return nil, copro.User{}, ErrUnknownProfile
	}
	if revoked, err := s.isRevoked(ctx, claims.ID); err != nil {
		return nil, copro.User{}, err
	} else if revoked {
		return nil, copro.User{}, ErrSessionRevoked
	}

	snap, err := s.snapshot()
	if err != nil {
		return nil, copro.User{}, err
	}
	user, err := snap.User(claims.Subject)
	if err != nil {
		return nil, copro.User{}, ErrUnknownProfile
	}
	if err := Authorize(user, claims.Roles); err != nil {
		return nil, copro.User{}, err
	}
	return snap, user, nil
}

// Logout marca o jti como revogado até a expiração do token.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := s.jwt.AccessTTL()
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.sessions.Set(ctx, revokedKey(claims.ID), []byte(`"revoked"`), ttl); err != nil {
		return fmt.Errorf("revogar sessão: %w", err)
	}
	return nil
}

func (s *AuthService) isRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := s.sessions.Get(ctx, revokedKey(jti))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, cache.ErrMiss):
		return false, nil
	default:
		log.Ctx(ctx).Warn().Err(err).Msg("falha ao consultar revogação; sessão mantida")
		return false, nil
	}
}

func revokedKey(jti string) string {
	return cache.Key("session", "revoked", jti)
}

func toProfile(snap *store.Snapshot, u copro.User) Profile {
	return Profile{
		ID:     u.ID,
		Name:   u.Name,
		Role:   u.Role,
		Email:  u.Email,
		LotIDs: snap.OwnedLotIDs(u.ID),
	}
}
