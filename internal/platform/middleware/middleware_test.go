// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-search/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-search/internal/platform/middleware"
	"github.com/taibuivan/yomira-search/internal/platform/sec"
)

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	token  string
	claims *sec.AuthClaims
}

func (verifier stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != verifier.token {
		return nil, errors.New("bad token")
	}
	return verifier.claims, nil
}

// requesterEcho writes the resolved requester ID as the body.
var requesterEcho = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	_, _ = io.WriteString(writer, ctxutil.GetRequesterID(request.Context()))
})

func TestAuthenticate(t *testing.T) {
	verifier := stubVerifier{token: "good", claims: &sec.AuthClaims{UserID: "user-1"}}

	tests := []struct {
		name       string
		verifier   middleware.TokenVerifier
		header     string
		wantStatus int
		wantBody   string
	}{
		{"anonymous without header", verifier, "", http.StatusOK, ""},
		{"valid bearer token", verifier, "Bearer good", http.StatusOK, "user-1"},
		{"scheme is case-insensitive", verifier, "bearer good", http.StatusOK, "user-1"},
		{"invalid token", verifier, "Bearer bad", http.StatusUnauthorized, ""},
		{"wrong scheme", verifier, "Basic good", http.StatusUnauthorized, ""},
		{"missing token", verifier, "Bearer", http.StatusUnauthorized, ""},
		{"verification disabled", nil, "Bearer whatever", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			middleware.Authenticate(tt.verifier)(requesterEcho).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
				return
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "UNAUTHORIZED", body["code"])
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-id", seen)
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

type corsConfig struct {
	development bool
	origins     []string
}

func (cfg corsConfig) IsDevelopment() bool      { return cfg.development }
func (cfg corsConfig) AllowedOrigins() []string { return cfg.origins }

func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{origins: []string{"https://partner.example"}})(requesterEcho)

	for origin, allowed := range map[string]bool{
		"https://yomira.app":        true,
		"https://www.yomira.app":    true,
		"https://partner.example":   true,
		"https://elsewhere.example": false,
	} {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Origin", origin)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		if allowed {
			assert.Equal(t, origin, recorder.Header().Get("Access-Control-Allow-Origin"), origin)
		} else {
			assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"), origin)
		}
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set("Origin", "https://yomira.app")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", middleware.RealIP(request))
}
