package auth

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName      = "simplemarket_session"
	sessionUserIDKey = "user_id"
)

// SignIn stores userID in the session and writes the session cookie. The
// session id is replaced so an id planted before login is never promoted.
func SignIn(store sessions.Store, w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.ID = ""
	session.Values[sessionUserIDKey] = userID.String()
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SignOut expires the session cookie and drops its server-side state.
func SignOut(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("expire session: %w", err)
	}
	return nil
}

// SessionUserID reads the user ID from the request's session cookie.
func SessionUserID(store sessions.Store, r *http.Request) (uuid.UUID, error) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session cookie: %w", err)
	}
	raw, ok := session.Values[sessionUserIDKey].(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrUnauthenticated
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user_id in session: %w", err)
	}
	return userID, nil
}
