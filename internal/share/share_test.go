package share

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahidhasan98/changelog-viewer/internal/pattern"
)

func TestEncodeParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		pattern string
	}{
		{name: "default preset", repo: "korynunn/changelogit", pattern: pattern.Default},
		{name: "braced preset", repo: "owner/repo", pattern: pattern.Braced},
		{name: "comma in pattern", repo: "owner/repo", pattern: `/\d{1,3}\.\d+/`},
		{name: "hash and spaces", repo: "owner/my.repo", pattern: `#release v\d+ #`},
		{name: "unicode", repo: "owner/repo", pattern: `/версия \d+/`},
		{name: "plus quantifier", repo: "owner/repo", pattern: `/^\d+\.\d+\.\d+$/`},
		{name: "empty pattern", repo: "owner/repo", pattern: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := Parse(Encode(tt.repo, tt.pattern))
			require.NoError(t, err)
			assert.Equal(t, Params{Repo: tt.repo, Pattern: tt.pattern}, params)

			params, err = Parse("#" + Encode(tt.repo, tt.pattern))
			require.NoError(t, err)
			assert.Equal(t, Params{Repo: tt.repo, Pattern: tt.pattern}, params)
		})
	}
}

func TestEncode_Format(t *testing.T) {
	assert.Equal(t, `owner/repo,%2Fv%5Cd+%2F`, Encode("owner/repo", `/v\d+/`))
	assert.Equal(t, `owner/repo,%2Fa%2Cb%23%20c%2F`, Encode("owner/repo", `/a,b# c/`))
}

func TestParse(t *testing.T) {
	params, err := Parse("#owner/repo")
	require.NoError(t, err)
	assert.Equal(t, Params{Repo: "owner/repo"}, params)

	params, err = Parse("")
	require.NoError(t, err)
	assert.Equal(t, Params{}, params)

	_, err = Parse("owner/repo,%zz")
	assert.Error(t, err)
}

func TestParse_Unencoded(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		pattern  string
	}{
		{name: "raw plus", fragment: `#korynunn/changelogit,/^\d+\.\d+\.\d+$/`, pattern: `/^\d+\.\d+\.\d+$/`},
		{name: "encoded plus", fragment: `#korynunn/changelogit,%2F%5Cd%2B%2F`, pattern: `/\d+/`},
		{name: "raw braced", fragment: `#korynunn/changelogit,/v\d+\.\d+\.\d+/`, pattern: `/v\d+\.\d+\.\d+/`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := Parse(tt.fragment)
			require.NoError(t, err)
			assert.Equal(t, Params{Repo: "korynunn/changelogit", Pattern: tt.pattern}, params)

			_, err = pattern.Compile(params.Pattern)
			assert.NoError(t, err)
		})
	}
}

func TestLink(t *testing.T) {
	assert.Equal(t,
		"https://example.com/changelog/#owner/repo,%2Fx%2F",
		Link("https://example.com/changelog/#old,fragment", "owner/repo", "/x/"))
}

func TestWriteQR(t *testing.T) {
	var buf bytes.Buffer
	WriteQR(&buf, "https://example.com/#owner/repo,%2Fx%2F")
	assert.NotEmpty(t, buf.String())
}
