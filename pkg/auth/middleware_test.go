package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/simplemarket/pkg/logger"
)

// newTestStore returns a gorilla CookieStore; the sessions.Store contract is
// the same one RedisStore satisfies in production.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

// signedInRequest signs userID in against store and returns a fresh request
// carrying the resulting cookies.
func signedInRequest(t *testing.T, store sessions.Store, userID uuid.UUID) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	if err := SignIn(store, w, httptest.NewRequest(http.MethodPost, "/api/account/login", nil), userID); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/items", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func requestWithSessionValue(t *testing.T, store sessions.Store, value any) *http.Request {
	t.Helper()

	writeReq := httptest.NewRequest(http.MethodPost, "/api/items", nil)
	w := httptest.NewRecorder()
	session, err := store.Get(writeReq, sessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if value != nil {
		session.Values[sessionUserIDKey] = value
	}
	if err := session.Save(writeReq, w); err != nil {
		t.Fatalf("save session: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/items", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestRequireAuth_ValidSession(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	var captured uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	RequireAuth(store, logger.Discard())(next).ServeHTTP(w, signedInRequest(t, store, userID))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured != userID {
		t.Fatalf("expected user %v in context, got %v", userID, captured)
	}
}

func TestRequireAuth_Rejects(t *testing.T) {
	store := newTestStore()
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{"missing cookie", func(t *testing.T) *http.Request {
			return httptest.NewRequest(http.MethodPost, "/api/items", nil)
		}},
		{"session without user_id", func(t *testing.T) *http.Request {
			return requestWithSessionValue(t, store, nil)
		}},
		{"malformed user_id", func(t *testing.T) *http.Request {
			return requestWithSessionValue(t, store, "not-a-valid-uuid")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("next handler should not be called")
			})
			w := httptest.NewRecorder()
			RequireAuth(store, logger.Discard())(next).ServeHTTP(w, tt.req(t))
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	t.Run("anonymous passes through", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			if _, err := UserIDFromCtx(r.Context()); err == nil {
				t.Error("anonymous request must not carry a user id")
			}
		})
		OptionalAuth(store)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items", nil))
		if !called {
			t.Fatal("next handler not called")
		}
	})

	t.Run("signed in user injected", func(t *testing.T) {
		var captured uuid.UUID
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = UserIDFromCtx(r.Context())
		})
		OptionalAuth(store)(next).ServeHTTP(httptest.NewRecorder(), signedInRequest(t, store, userID))
		if captured != userID {
			t.Fatalf("expected %v, got %v", userID, captured)
		}
	})
}

func TestRedisStore_SignInSignOut(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewSessionStore(client,
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
		false,
	)
	userID := uuid.New()

	req := signedInRequest(t, store, userID)
	got, err := SessionUserID(store, req)
	if err != nil {
		t.Fatalf("SessionUserID: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %v, got %v", userID, got)
	}
	if keys := mr.Keys(); len(keys) != 1 {
		t.Fatalf("expected one session key in redis, got %v", keys)
	}

	w := httptest.NewRecorder()
	if err := SignOut(store, w, req); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected session key deleted, got %v", keys)
	}

	// The old cookie now points at nothing.
	stale := httptest.NewRequest(http.MethodGet, "/api/account/me", nil)
	for _, c := range req.Cookies() {
		stale.AddCookie(c)
	}
	if _, err := SessionUserID(store, stale); err == nil {
		t.Fatal("expected stale session to be rejected")
	}
}

func TestRedisStore_SignInRotatesSessionID(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewSessionStore(client,
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
		false,
	)

	first := signedInRequest(t, store, uuid.New())

	w := httptest.NewRecorder()
	if err := SignIn(store, w, first, uuid.New()); err != nil {
		t.Fatalf("second sign in: %v", err)
	}
	if keys := mr.Keys(); len(keys) != 2 {
		t.Fatalf("expected a second session key after re-login, got %v", keys)
	}
	if w.Result().Cookies()[0].Value == first.Cookies()[0].Value {
		t.Fatal("expected a new session cookie")
	}
}
