package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/codeBunny2022/gwsmaa/prompt"
	"github.com/codeBunny2022/gwsmaa/storage"
)

// requiredFields are the six prompt context slots every decision request
// must carry.
var requiredFields = []string{
	"task",
	"already_done",
	"workspace_content",
	"prompt_history",
	"current_service_url",
	"service_history",
}

type errorResponse struct {
	Error string `json:"error"`
}

type decideResponse struct {
	Data        any     `json:"data"`
	AlreadyDone any     `json:"already_done"`
	Thought     *string `json:"thought"`
}

// handleDecide is the single decision endpoint. Validation failures and
// missing credentials are resolved before the pipeline runs; the pipeline is
// never invoked for an invalid request.
func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("GWMAA decision service\n"))
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.logger.Info("request received")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("invalid request: unparseable body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
		return
	}

	fields := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		value, ok := body[name].(string)
		if !ok {
			s.logger.Warn("invalid request: missing required fields", zap.String("field", name))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
			return
		}
		fields[name] = value
	}

	sid := s.sessionID(w, r)
	if _, err := s.sessions.LoadCredentials(r.Context(), sid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Not an error: the client is sent through the consent flow.
			http.Redirect(w, r, "/oauth2login", http.StatusFound)
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	pctx := prompt.Context{
		Task:              fields["task"],
		AlreadyDone:       fields["already_done"],
		WorkspaceContent:  fields["workspace_content"],
		PromptHistory:     fields["prompt_history"],
		CurrentServiceURL: fields["current_service_url"],
		ServiceHistory:    fields["service_history"],
	}

	outcome, err := s.decider.Decide(r.Context(), pctx)
	if err != nil {
		s.logger.Error("error processing request", zap.Error(err))
		// Clients rely on the raw message to distinguish provider failures.
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, decideResponse{
		Data:        outcome.Invocations,
		AlreadyDone: outcome.History,
		Thought:     outcome.Thought,
	})
}
