package handlers

import (
	"net/http"
	"time"

	"github.com/ozzus/hopcraft/internal/application/shell"
)

const sessionCookie = "hopcraft_session"

type SessionManager struct {
	store  *shell.Store
	secure bool
}

func NewSessionManager(store *shell.Store, secure bool) *SessionManager {
	return &SessionManager{store: store, secure: secure}
}

// Resolve returns the caller's session, starting a new one when the cookie is missing or
// points to an evicted session.
func (m *SessionManager) Resolve(w http.ResponseWriter, r *http.Request) shell.State {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if st, err := m.store.Get(c.Value); err == nil {
			return st
		}
	}

	st := m.store.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    st.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return st
}

func (m *SessionManager) Update(id string, fn func(st *shell.State)) (shell.State, error) {
	return m.store.Update(id, fn)
}

func (m *SessionManager) Now() time.Time {
	return m.store.Now()
}
