package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/nahidhasan98/changelog-viewer/internal/config"
	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/logger"
	"github.com/nahidhasan98/changelog-viewer/internal/models"
	"github.com/nahidhasan98/changelog-viewer/internal/session"
	"github.com/nahidhasan98/changelog-viewer/internal/share"
	"github.com/nahidhasan98/changelog-viewer/internal/validation"
)

// QuotaReporter exposes the last GitHub quota observed by the API client
type QuotaReporter interface {
	LastQuota() (models.RateLimitSnapshot, bool)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	sessions  *session.Registry
	quota     QuotaReporter
	defaults  config.ChangelogConfig
	log       *logger.Logger
	validator *validation.Validator
}

// New creates a new handler instance
func New(sessions *session.Registry, quota QuotaReporter, defaults config.ChangelogConfig, log *logger.Logger) *Handler {
	return &Handler{
		sessions:  sessions,
		quota:     quota,
		defaults:  defaults,
		log:       log,
		validator: validation.New(),
	}
}

// CreateSession handles POST /sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeAppError(w, err)
		return
	}

	if appErr := h.validator.ValidateCreateSessionRequest(&req); appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	repo := strings.TrimSpace(req.Repo)
	if repo == "" {
		repo = h.defaults.DefaultRepo
	}
	raw := req.Pattern
	if raw == "" {
		raw = h.defaults.DefaultPattern
	}

	id, s, err := h.sessions.Create()
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.configure(s, repo, raw, req.Fragment); err != nil {
		h.sessions.Delete(id)
		h.writeError(w, err)
		return
	}

	h.log.With("session", id).Infof("Session created for %s", s.Snapshot().Repo)

	if req.Load {
		// the outcome is recorded on the session and reported in the snapshot
		_ = s.LoadNextPage(loadContext(r))
	}

	h.writeJSON(w, h.sessionResponse(id, s.Snapshot()), http.StatusCreated)
}

func (h *Handler) configure(s *session.Session, repo, raw, fragment string) error {
	if raw != "" {
		if err := s.SetPattern(raw); err != nil {
			return err
		}
	}
	s.SelectRepo(repo)

	if fragment == "" {
		return nil
	}
	return h.applyFragment(s, fragment)
}

// GetSession handles GET /sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, h.sessionResponse(id, s.Snapshot()), http.StatusOK)
}

// NextPage handles POST /sessions/{id}/next. The snapshot is returned even
// when the load fails, with the status of the error.
func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	status := http.StatusOK
	if err := s.LoadNextPage(loadContext(r)); err != nil {
		appErr := toAppError(err)
		status = appErr.StatusCode
		h.log.With("session", id).
			With("error_code", appErr.Code).
			Warnf("Loading next page failed: %s", appErr.Message)
	}

	h.writeJSON(w, h.sessionResponse(id, s.Snapshot()), status)
}

// UpdateRepo handles PUT /sessions/{id}/repo
func (h *Handler) UpdateRepo(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.UpdateRepoRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeAppError(w, err)
		return
	}
	if appErr := h.validator.ValidateRepo(req.Repo); appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	s.SelectRepo(req.Repo)
	h.writeJSON(w, h.sessionResponse(id, s.Snapshot()), http.StatusOK)
}

// UpdatePattern handles PUT /sessions/{id}/pattern
func (h *Handler) UpdatePattern(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.UpdatePatternRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeAppError(w, err)
		return
	}
	if appErr := h.validator.ValidatePattern(req.Pattern); appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	if err := s.SetPattern(req.Pattern); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, h.sessionResponse(id, s.Snapshot()), http.StatusOK)
}

// UpdateFragment handles PUT /sessions/{id}/fragment
func (h *Handler) UpdateFragment(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.UpdateFragmentRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeAppError(w, err)
		return
	}

	if err := h.applyFragment(s, req.Fragment); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, h.sessionResponse(id, s.Snapshot()), http.StatusOK)
}

func (h *Handler) applyFragment(s *session.Session, fragment string) error {
	params, err := share.Parse(fragment)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidRequest, "Invalid fragment")
	}
	if params.Repo != "" {
		if appErr := h.validator.ValidateRepo(params.Repo); appErr != nil {
			return appErr
		}
	}
	if params.Pattern != "" {
		if appErr := h.validator.ValidatePattern(params.Pattern); appErr != nil {
			return appErr
		}
	}

	_, err = s.Apply(fragment)
	return err
}

// Share handles GET /sessions/{id}/share
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	snapshot := s.Snapshot()
	h.writeJSON(w, &models.ShareResponse{
		Fragment: share.Encode(snapshot.Repo, snapshot.Pattern),
		Link:     share.Link(h.defaults.ShareBaseURL, snapshot.Repo, snapshot.Pattern),
	}, http.StatusOK)
}

// DeleteSession handles DELETE /sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.sessions.Delete(id) {
		h.writeAppError(w, errors.SessionNotFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (string, *session.Session, bool) {
	id := r.PathValue("id")
	s, err := h.sessions.Get(id)
	if err != nil {
		h.writeError(w, err)
		return "", nil, false
	}
	return id, s, true
}

// decodeBody decodes a JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) *errors.AppError {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		return errors.InvalidRequest("Invalid request body: " + err.Error())
	}
	return nil
}

// loadContext detaches a page load from the request so a client hanging up
// does not leave the session errored. The GitHub client's timeout still applies.
func loadContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}
