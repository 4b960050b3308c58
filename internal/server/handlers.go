package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/matzehuels/gitcite/pkg/analytics"
	errs "github.com/matzehuels/gitcite/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

type copyRequest struct {
	RepoName string `json:"repo_name"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrCodeInvalidReference), errs.Is(err, errs.ErrCodeInvalidInput):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errs.Is(err, errs.ErrCodeFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorBody{Error: errorDetail{
		Code:    code,
		Message: errs.UserMessage(err),
	}})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleCitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	input := r.URL.Query().Get("repo")
	if err := errs.ValidateQuery(input); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.citer.Cite(ctx, input)
	if err != nil {
		s.tracker.Track(ctx, analytics.GenerateCitation(input, false))
		s.tracker.Track(ctx, analytics.Error(errs.UserMessage(err), "api"))
		s.logger.Warn("citation failed", "repo", input, "error", err)
		s.writeError(w, err)
		return
	}

	s.tracker.Track(ctx, analytics.GenerateCitation(input, true))
	writeJSON(w, http.StatusOK, result.Citation)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) > errs.MaxQueryLength {
		s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "query too long (max %d characters)", errs.MaxQueryLength))
		return
	}

	suggestions := s.citer.Suggest(ctx, q)
	if q != "" {
		s.tracker.Track(ctx, analytics.Search(q))
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

func (s *Server) handleCopyEvent(w http.ResponseWriter, r *http.Request) {
	var req copyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := errs.ValidateQuery(req.RepoName); err != nil {
		s.writeError(w, err)
		return
	}
	s.tracker.Track(r.Context(), analytics.CopyCitation(req.RepoName))
	w.WriteHeader(http.StatusNoContent)
}
