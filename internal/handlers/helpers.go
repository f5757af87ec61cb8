package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nahidhasan98/changelog-viewer/internal/changelog"
	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/models"
	"github.com/nahidhasan98/changelog-viewer/internal/session"
	"github.com/nahidhasan98/changelog-viewer/internal/share"
)

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to encode JSON response", err)
	}
}

// writeError writes err, treating anything that is not an AppError as internal
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeAppError(w, toAppError(err))
}

// writeAppError writes an application error response
func (h *Handler) writeAppError(w http.ResponseWriter, appErr *errors.AppError) {
	// Log the error for internal monitoring
	h.log.With("error_code", appErr.Code).
		With("status_code", appErr.StatusCode).
		Error(appErr.Message, appErr.Err)

	h.writeJSON(w, errorResponse(appErr), appErr.StatusCode)
}

func toAppError(err error) *errors.AppError {
	if appErr, ok := errors.As(err); ok {
		return appErr
	}
	return errors.InternalError(err)
}

func errorResponse(appErr *errors.AppError) *models.ErrorResponse {
	return &models.ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	}
}

func (h *Handler) sessionResponse(id string, s session.Snapshot) *models.SessionResponse {
	response := &models.SessionResponse{
		ID:         id,
		Repo:       s.Repo,
		Pattern:    s.Pattern,
		Fragment:   share.Encode(s.Repo, s.Pattern),
		State:      string(s.State),
		Loading:    s.Loading,
		HasMore:    s.HasMore,
		Pages:      s.Pages,
		Generation: s.Generation,
		RateLimit:  s.Quota,
		Versions:   make([]models.VersionResponse, 0, len(s.Versions)),
		UpdatedAt:  s.UpdatedAt,
	}

	if s.Err != nil {
		response.Error = errorResponse(toAppError(s.Err))
	}

	for _, g := range s.VisibleVersions() {
		response.Versions = append(response.Versions, versionResponse(g))
	}

	return response
}

func versionResponse(g *changelog.Group) models.VersionResponse {
	version := models.VersionResponse{
		Version:      g.Label,
		Heading:      g.Heading(),
		Date:         changelog.FormatDate(g.Date),
		TotalCommits: len(g.Commits),
		Commits:      make([]models.CommitResponse, 0, len(g.RelevantCommits)),
	}

	for _, c := range g.RelevantCommits {
		version.Commits = append(version.Commits, models.CommitResponse{
			SHA:       c.SHA,
			Title:     changelog.Title(c.Message),
			Body:      changelog.Body(c.Message),
			Author:    c.AuthorLogin,
			AuthorURL: c.AuthorURL,
			AvatarURL: c.AuthorAvatarURL,
			URL:       c.HTMLURL,
			Date:      c.CommittedAt,
		})
	}

	return version
}
