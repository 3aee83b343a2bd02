package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serve(h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, requestBody(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler, userID string) string {
	t.Helper()
	rec := serve(h, http.MethodPost, "/auth/login", "", map[string]string{"user_id": userID})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200 got %d", userID, rec.Code)
	}
	var payload struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeData(t, rec, &payload)
	if payload.AccessToken == "" || payload.User.ID != userID {
		t.Fatalf("login inesperado: %+v", payload)
	}
	return payload.AccessToken
}

func newTestRouter(t *testing.T) (*fixture, http.Handler) {
	t.Helper()
	f := newFixture(t)
	router, err := NewRouter(f.cfg, f.store, f.cache, f.auth, nil, nil)
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return f, router
}

func TestPublicRoutes(t *testing.T) {
	_, router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"health", http.MethodGet, "/health", nil, http.StatusOK},
		{"ready", http.MethodGet, "/ready", nil, http.StatusOK},
		{"profiles", http.MethodGet, "/auth/profiles", nil, http.StatusOK},
		{"login", http.MethodPost, "/auth/login", map[string]string{"user_id": "u2"}, http.StatusOK},
		{"login-unknown", http.MethodPost, "/auth/login", map[string]string{"user_id": "u99"}, http.StatusNotFound},
		{"login-empty", http.MethodPost, "/auth/login", map[string]string{"user_id": " "}, http.StatusBadRequest},
		{"private-without-token", http.MethodGet, "/dashboard", nil, http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(router, tc.method, tc.path, "", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestLoginInvalidJSON(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", requestBodyRaw("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestProfilesListSyndicFirst(t *testing.T) {
	_, router := newTestRouter(t)

	rec := serve(router, http.MethodGet, "/auth/profiles", "", nil)
	var payload struct {
		Profiles []struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"profiles"`
	}
	decodeData(t, rec, &payload)

	if len(payload.Profiles) != 4 {
		t.Fatalf("expected 4 profiles got %d", len(payload.Profiles))
	}
	if payload.Profiles[0].Role != "SYNDIC" {
		t.Fatalf("síndico deveria vir primeiro: %+v", payload.Profiles[0])
	}
}

func TestSessionFlow(t *testing.T) {
	_, router := newTestRouter(t)

	owner := login(t, router, "u2")
	syndic := login(t, router, "u1")

	if rec := serve(router, http.MethodGet, "/dashboard", owner, nil); rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200 got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/settings", owner, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("settings owner: expected 403 got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/settings", syndic, nil); rec.Code != http.StatusOK {
		t.Fatalf("settings syndic: expected 200 got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/me", "token-quebrado", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("token inválido: expected 401 got %d", rec.Code)
	}

	rec := serve(router, http.MethodGet, "/me", owner, nil)
	var me struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		LotIDs []string `json:"lot_ids"`
	}
	decodeData(t, rec, &me)
	if me.User.ID != "u2" || len(me.LotIDs) != 2 {
		t.Fatalf("me inesperado: %+v", me)
	}

	if rec := serve(router, http.MethodPost, "/auth/logout", owner, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204 got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/dashboard", owner, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("token revogado: expected 401 got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/dashboard", syndic, nil); rec.Code != http.StatusOK {
		t.Fatalf("outra sessão deveria continuar válida, got %d", rec.Code)
	}
}

func TestErrorEnvelope(t *testing.T) {
	_, router := newTestRouter(t)
	token := login(t, router, "u2")

	rec := serve(router, http.MethodGet, "/maintenance/t2", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}

	var env struct {
		Data  any        `json:"data"`
		Error *ErrorBody `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if env.Data != nil || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("envelope inesperado: %s", rec.Body.String())
	}
}
