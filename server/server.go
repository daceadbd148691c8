// Package server exposes the decision pipeline over HTTP and hosts the
// Google OAuth2 handshake that supplies it with credentials.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/codeBunny2022/gwsmaa/agent"
	"github.com/codeBunny2022/gwsmaa/config"
	"github.com/codeBunny2022/gwsmaa/storage"
)

// Scopes are the Workspace permissions the automation needs. Fixed set;
// widening them requires users to re-consent.
var Scopes = []string{
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/calendar",
}

// Server wires the decision pipeline, session store, and OAuth flow behind
// one HTTP surface.
type Server struct {
	decider  *agent.Decider
	sessions *storage.SessionStore
	oauth    *oauth2.Config
	logger   *zap.Logger
}

// New creates a server.
func New(decider *agent.Decider, sessions *storage.SessionStore, oauthCfg config.OAuthConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		decider:  decider,
		sessions: sessions,
		oauth: &oauth2.Config{
			ClientID:     oauthCfg.ClientID,
			ClientSecret: oauthCfg.ClientSecret,
			RedirectURL:  oauthCfg.RedirectURL,
			Scopes:       Scopes,
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDecide)
	mux.HandleFunc("/oauth2login", s.handleOAuthLogin)
	mux.HandleFunc("/oauth2callback", s.handleOAuthCallback)
	return mux
}

// Serve starts listening on the provided address.
func (s *Server) Serve(addr string) error {
	return s.ServeContext(context.Background(), addr)
}

// ServeContext allows the caller to control shutdown via context cancellation.
func (s *Server) ServeContext(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	s.logger.Info("listening", zap.String("addr", addr))
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; nothing useful left to do.
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}
