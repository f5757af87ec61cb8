// Package share encodes a repository and version pattern into the location
// fragment used by shareable changelog links ("owner/repo,<pattern>").
package share

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/mdp/qrterminal/v3"
)

// Params are the session parameters carried by a fragment. Empty fields were
// absent from the fragment.
type Params struct {
	Repo    string
	Pattern string
}

// Encode builds the fragment. Both parts are percent encoded, so a comma
// inside the pattern survives the round trip; "+" is left as is.
func Encode(repo, pattern string) string {
	return escape(repo) + "," + url.PathEscape(pattern)
}

// Parse reads a fragment produced by Encode, or a hand written one with the
// pattern left unencoded. A leading "#" is ignored. "+" decodes to itself,
// never to a space, since it is a common regexp quantifier.
func Parse(fragment string) (Params, error) {
	fragment = strings.TrimPrefix(fragment, "#")

	repoPart, patternPart, _ := strings.Cut(fragment, ",")

	repo, err := url.PathUnescape(repoPart)
	if err != nil {
		return Params{}, fmt.Errorf("decoding repo %q: %w", repoPart, err)
	}
	pattern, err := url.PathUnescape(patternPart)
	if err != nil {
		return Params{}, fmt.Errorf("decoding pattern %q: %w", patternPart, err)
	}

	return Params{Repo: repo, Pattern: pattern}, nil
}

// Link appends the fragment to baseURL, replacing any fragment it had
func Link(baseURL, repo, pattern string) string {
	base, _, _ := strings.Cut(baseURL, "#")
	return base + "#" + Encode(repo, pattern)
}

// WriteQR renders link as a half-block QR code for terminals
func WriteQR(w io.Writer, link string) {
	qrterminal.GenerateWithConfig(link, qrterminal.Config{
		Level:      qrterminal.M,
		Writer:     w,
		HalfBlocks: true,
		QuietZone:  1,
	})
}

// escape keeps the "/" between owner and name readable
func escape(repo string) string {
	return strings.ReplaceAll(url.PathEscape(repo), "%2F", "/")
}
