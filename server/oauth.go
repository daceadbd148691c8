package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/codeBunny2022/gwsmaa/storage"
	"github.com/codeBunny2022/gwsmaa/workspace"
)

const sessionCookie = "gwsmaa_session"

// sessionID returns the caller's session id, minting one (and setting the
// cookie) on first contact.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

// handleOAuthLogin starts the authorization-code flow: mint a state token,
// remember it on the session, and send the user to Google's consent screen.
func (s *Server) handleOAuthLogin(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)
	state := uuid.NewString()

	if err := s.sessions.SaveState(r.Context(), sid, state); err != nil {
		s.logger.Error("failed to save oauth state", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	authURL := s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleOAuthCallback finishes the flow: verify state, exchange the code,
// and persist the credential set on the session.
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)

	expected, err := s.sessions.LoadState(r.Context(), sid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no pending authorization for session"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if state := r.URL.Query().Get("state"); state != expected {
		s.logger.Warn("oauth state mismatch", zap.String("session", sid))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid oauth state"})
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing authorization code"})
		return
	}

	token, err := s.oauth.Exchange(r.Context(), code)
	if err != nil {
		s.logger.Error("code exchange failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	creds := workspace.FromToken(token, s.oauth)
	if err := s.sessions.SaveCredentials(r.Context(), sid, creds); err != nil {
		s.logger.Error("failed to save credentials", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
