package sharecmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahidhasan98/changelog-viewer/internal/share"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	c := &Command{Repo: "owner/repo", Preset: "braced", BaseURL: "https://viewer.example/", Out: &out}

	require.NoError(t, c.Run(context.Background()))

	link := strings.TrimSpace(out.String())
	assert.Equal(t, "https://viewer.example/#owner/repo,%2Fv%5Cd+%5C.%5Cd+%5C.%5Cd+%2F", link)

	_, fragment, _ := strings.Cut(link, "#")
	params, err := share.Parse(fragment)
	require.NoError(t, err)
	assert.Equal(t, `/v\d+\.\d+\.\d+/`, params.Pattern)
}

func TestRun_QR(t *testing.T) {
	var out bytes.Buffer
	c := &Command{Repo: "owner/repo", Pattern: `/\d+/`, BaseURL: "https://viewer.example/", QR: true, Out: &out}

	require.NoError(t, c.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Greater(t, len(lines), 10)
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		desc        string
		cmd         Command
		expectError string
	}{
		{desc: "bad repo", cmd: Command{Repo: "nope"}, expectError: "invalid repository"},
		{desc: "bad pattern", cmd: Command{Repo: "owner/repo", Pattern: "/(/"}, expectError: "INVALID_PATTERN"},
		{desc: "bad preset", cmd: Command{Repo: "owner/repo", Preset: "x"}, expectError: "unknown preset"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			tc.cmd.Out = &bytes.Buffer{}
			err := tc.cmd.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectError)
		})
	}
}
