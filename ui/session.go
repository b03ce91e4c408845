package ui

import (
	"context"
	"net/http"

	"insightflow/domain/core"
)

const sessionCookie = "insightflow_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// withSession binds each request to a browser session. A missing or invalid
// cookie mints a fresh session ID; the workflow state it keys starts empty,
// which every stage treats as a valid "nothing yet" state.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, ok := sessionFromCookie(r)
		if !ok {
			sid = core.NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    string(sid),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromCookie(r *http.Request) (core.SessionID, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	sid, err := core.ParseSessionID(cookie.Value)
	if err != nil {
		return "", false
	}
	return sid, true
}

// sessionID pulls the bound session out of the request context. The session
// middleware guarantees presence on every /api route.
func sessionID(r *http.Request) core.SessionID {
	return r.Context().Value(sessionIDKey).(core.SessionID)
}
