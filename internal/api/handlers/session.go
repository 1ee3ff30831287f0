package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

const SessionCookie = "route_finder_session"

// existingSession returns the session id carried by the request, if valid.
func existingSession(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// ensureSession returns the request's session id, issuing a new one when the
// request carries none.
func ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id, ok := existingSession(r); ok {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
