package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahidhasan98/changelog-viewer/internal/pattern"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address())
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIURL)
	assert.Equal(t, "korynunn/changelogit", cfg.Changelog.DefaultRepo)
	assert.Equal(t, pattern.Default, cfg.Changelog.DefaultPattern)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.TTL)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("GITHUB_TIMEOUT", "5s")
	t.Setenv("CHANGELOG_DEFAULT_PATTERN", pattern.Braced)
	t.Setenv("SESSIONS_MAX", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, pattern.Braced, cfg.Changelog.DefaultPattern)
	assert.Equal(t, 1000, cfg.Sessions.Max)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "invalid server port"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "invalid log format"},
		{name: "plain http api", mutate: func(c *Config) { c.GitHub.APIURL = "http://api.github.com" }, wantErr: "must use https"},
		{name: "bad pattern", mutate: func(c *Config) { c.Changelog.DefaultPattern = "1.2.3" }, wantErr: "invalid default pattern"},
		{name: "negative sessions", mutate: func(c *Config) { c.Sessions.Max = -1 }, wantErr: "sessions max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: 8080},
		Log:       LogConfig{Level: "info", Format: "json"},
		GitHub:    GitHubConfig{APIURL: "https://api.github.com", Timeout: time.Second},
		Changelog: ChangelogConfig{DefaultPattern: pattern.Default},
	}
}
