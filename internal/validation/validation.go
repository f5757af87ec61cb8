package validation

import (
	"regexp"
	"strings"

	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/models"
)

// MaxPatternLength bounds user supplied version patterns
const MaxPatternLength = 256

var (
	// owner: alphanumerics and single hyphens, at most 39 characters
	ownerPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

	// repository names allow dots, hyphens and underscores
	namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
)

// Validator provides validation methods
type Validator struct{}

// New creates a new validator instance
func New() *Validator {
	return &Validator{}
}

// ValidateCreateSessionRequest validates a create session request. Empty
// fields are allowed and fall back to configured defaults.
func (v *Validator) ValidateCreateSessionRequest(req *models.CreateSessionRequest) *errors.AppError {
	if req == nil {
		return errors.InvalidRequest("Request body is required")
	}

	if req.Repo != "" {
		if err := v.ValidateRepo(req.Repo); err != nil {
			return err
		}
	}

	if req.Pattern != "" {
		if err := v.ValidatePattern(req.Pattern); err != nil {
			return err
		}
	}

	if len(req.Fragment) > MaxPatternLength*4 {
		return errors.ValidationError("Fragment too long")
	}

	return nil
}

// ValidateRepo checks that repo is an "owner/name" GitHub repository id
func (v *Validator) ValidateRepo(repo string) *errors.AppError {
	repo = strings.TrimSpace(repo)
	if repo == "" {
		return errors.ValidationError("'repo' field is required")
	}

	if !v.IsValidRepo(repo) {
		return errors.ValidationError("Invalid repository: expected owner/name, got " + repo)
	}

	return nil
}

// IsValidRepo reports whether repo looks like "owner/name"
func (v *Validator) IsValidRepo(repo string) bool {
	owner, name, ok := strings.Cut(strings.TrimSpace(repo), "/")
	if !ok {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	return ownerPattern.MatchString(owner) && namePattern.MatchString(name)
}

// ValidatePattern checks the size of a version pattern. Compiling it is left
// to the pattern package, which reports INVALID_PATTERN.
func (v *Validator) ValidatePattern(raw string) *errors.AppError {
	if strings.TrimSpace(raw) == "" {
		return errors.ValidationError("'pattern' field is required")
	}

	if len(raw) > MaxPatternLength {
		return errors.ValidationError("Pattern too long (maximum 256 characters)")
	}

	return nil
}
