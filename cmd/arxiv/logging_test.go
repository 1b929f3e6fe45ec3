package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn().Str("input", "cs.XX").Msg("kept")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "cs.XX", entry["input"])
	assert.Contains(t, entry, "time")
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "info", Format: "console"}, &buf)
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "debug", Format: "json"}, &buf)

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Get("/v1/ids/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ids/2301.00001", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["message"])
	assert.Equal(t, "/v1/ids/{id}", entry["route"])
	assert.Equal(t, "/v1/ids/2301.00001", entry["path"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
}
