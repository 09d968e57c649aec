package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/services/account/application/handlers"
	appsvcs "github.com/ghuser/simplemarket/services/account/application/services"
	"github.com/ghuser/simplemarket/services/account/infrastructure/crypto"
	"github.com/ghuser/simplemarket/services/account/infrastructure/persistence/memory"
)

const strongPassword = "ABc123!@#"

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	hasher := crypto.NewArgon2Hasher(crypto.Params{Time: 1, Memory: 8 * 1024, Threads: 1, SaltLen: 16, KeyLen: 32})
	svc, err := appsvcs.NewAccountService(memory.NewStore(), hasher, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	store := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		Routes(r, &appsvcs.Services{Account: svc}, store, logger.Discard())
	})
	return r
}

func post(t *testing.T, r chi.Router, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r chi.Router, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginMe(t *testing.T) {
	r := newRouter(t)

	w := post(t, r, "/api/account/register", map[string]string{
		"email": "ana@example.com", "display_name": "Ana", "password": strongPassword,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("register must sign the user in")
	}

	t.Run("duplicate email", func(t *testing.T) {
		w := post(t, r, "/api/account/register", map[string]string{
			"email": "ANA@example.com", "display_name": "Ana 2", "password": strongPassword,
		})
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := post(t, r, "/api/account/login", map[string]string{"email": "ana@example.com", "password": "nope"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("login then me then logout", func(t *testing.T) {
		w := post(t, r, "/api/account/login", map[string]string{"email": "ana@example.com", "password": strongPassword})
		if w.Code != http.StatusOK {
			t.Fatalf("login: %d %s", w.Code, w.Body.String())
		}
		cookies := w.Result().Cookies()

		w = get(r, "/api/account/me", cookies...)
		if w.Code != http.StatusOK {
			t.Fatalf("me: %d", w.Code)
		}
		var me handlers.UserResponse
		if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
			t.Fatal(err)
		}
		if me.Email != "ana@example.com" || me.DisplayName != "Ana" {
			t.Fatalf("unexpected me %+v", me)
		}

		w = post(t, r, "/api/account/logout", map[string]string{}, cookies...)
		if w.Code != http.StatusNoContent {
			t.Fatalf("logout: %d", w.Code)
		}
		expired := w.Result().Cookies()
		if len(expired) == 0 || expired[0].MaxAge >= 0 {
			t.Fatalf("logout must expire the cookie, got %+v", expired)
		}
	})

	t.Run("me anonymous", func(t *testing.T) {
		if w := get(r, "/api/account/me"); w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})
}

func TestRegister_WeakPasswordListsViolations(t *testing.T) {
	r := newRouter(t)
	w := post(t, r, "/api/account/register", map[string]string{
		"email": "bob@example.com", "display_name": "Bob", "password": "abc",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var resp handlers.WeakPasswordResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Violations) != 4 {
		t.Fatalf("expected four violations, got %+v", resp.Violations)
	}
}

func TestRegister_InvalidRequest(t *testing.T) {
	r := newRouter(t)
	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"display_name": "Bob", "password": strongPassword}},
		{"bad email", map[string]string{"email": "bob", "display_name": "Bob", "password": strongPassword}},
		{"blank display name", map[string]string{"email": "bob@example.com", "display_name": " ", "password": strongPassword}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := post(t, r, "/api/account/register", tt.body); w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", w.Code)
			}
		})
	}
}

func TestValidatePasswordEndpoint(t *testing.T) {
	r := newRouter(t)
	tests := []struct {
		name      string
		password  string
		wantValid bool
		wantCodes []string
	}{
		{"strong", strongPassword, true, nil},
		{"abc", "abc", false, []string{"insufficient_uppercase", "insufficient_digits", "insufficient_symbols"}},
		{"blank", "  ", false, []string{"required"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, r, "/api/account/password/validate", map[string]string{"password": tt.password})
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			var resp handlers.PasswordCheckResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Valid != tt.wantValid || len(resp.Violations) != len(tt.wantCodes) {
				t.Fatalf("unexpected response %+v", resp)
			}
			for i, code := range tt.wantCodes {
				if resp.Violations[i].Code != code {
					t.Fatalf("violation %d = %q, want %q", i, resp.Violations[i].Code, code)
				}
			}
		})
	}
}
