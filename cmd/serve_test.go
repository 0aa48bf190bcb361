package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/killallgit/rewise-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "serve command with help",
			args:           []string{"serve", "--help"},
			expectedOutput: "Start the ReWise API server",
		},
		{
			name:    "serve command with invalid port",
			args:    []string{"serve", "--port", "invalid"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, buf.String(), tt.expectedOutput)
		})
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8000,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		ITunes: config.ITunesConfig{
			BaseURL:           "http://127.0.0.1:1",
			Timeout:           time.Second,
			RequestsPerMinute: 250,
		},
		Feeds: config.FeedsConfig{
			Timeout:     time.Second,
			MaxEpisodes: 20,
		},
		Cache: config.CacheConfig{FeedTTL: 10 * time.Minute},
		RateLimiting: config.RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 30,
			Burst:             30,
		},
		Security: config.SecurityConfig{
			CORSOrigins:      []string{"*"},
			MaxSearchLength:  100,
			MaxFeedURLLength: 500,
		},
		Logging: config.LoggingConfig{Level: "info", Format: "plain"},
	}
}

func TestNewServer_Wiring(t *testing.T) {
	server, err := newServer(testConfig())
	require.NoError(t, err)

	engine := server.Engine()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var root map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	assert.Equal(t, Version, root["version"])

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/episodes/cache/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, float64(0), status["cacheSize"])
}

func TestNewServer_RejectsInvalidFeedURL(t *testing.T) {
	server, err := newServer(testConfig())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	server.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/episodes?feedUrl=not-a-url", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogFormat(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "plain", logFormat(cmd, ""))
	assert.Equal(t, "text", logFormat(cmd, "text"))

	require.NoError(t, cmd.ParseFlags([]string{"--json-logs"}))
	t.Cleanup(func() { _ = cmd.Flags().Set("json-logs", "false") })
	assert.Equal(t, "json", logFormat(cmd, "text"))
}
