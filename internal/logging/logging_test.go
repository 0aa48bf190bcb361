package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "defaults", level: "", format: ""},
		{name: "json debug", level: "debug", format: "json"},
		{name: "text warn", level: "WARN", format: "text"},
		{name: "bad level", level: "loud", format: "plain", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level, tt.format, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInit_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init("info", FormatJSON, &buf))

	log.WithField("feed_host", "feeds.example.com").Info("fetching fresh episodes")
	log.Debug("filtered out")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, "fetching fresh episodes", decoded["message"])
	assert.Equal(t, "info", decoded["level"])
	fields, ok := decoded["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "feeds.example.com", fields["feed_host"])
}

func TestPlainHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPlainHandler(&buf)
	handler.now = func() time.Time { return time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC) }

	err := handler.HandleLog(&log.Entry{
		Level:   log.WarnLevel,
		Message: "feed has no items",
		Fields:  log.Fields{"zeta": 1, "alpha": "a"},
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-09-01 12:30:00 W feed has no items alpha=a zeta=1\n", buf.String())
}
