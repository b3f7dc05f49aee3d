package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
	"github.com/vfg2006/superstore-dashboard/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

func sessionEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte(session.ID))
	})
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name           string
		path           string
		header         string
		setup          func(auth *mocks.MockAuthenticator)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "rota pública",
			path:           "/v1/login",
			expectedStatus: http.StatusOK,
			expectedBody:   "anonymous",
		},
		{
			name:           "sem cabeçalho",
			path:           "/v1/dashboard",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "sem Bearer",
			path:           "/v1/dashboard",
			header:         "Token abc",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   apiErrors.ErrInvalidToken,
		},
		{
			name:   "token válido",
			path:   "/v1/dashboard",
			header: "Bearer good",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Authenticate(gomock.Any(), "good").Return(&domain.SessionState{ID: "abc", Authenticated: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "abc",
		},
		{
			name:   "token expirado",
			path:   "/v1/dashboard",
			header: "Bearer old",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Authenticate(gomock.Any(), "old").Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   apiErrors.ErrExpiredToken,
		},
		{
			name:   "erro inesperado",
			path:   "/v1/dashboard",
			header: "Bearer good",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Authenticate(gomock.Any(), "good").Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := mocks.NewMockAuthenticator(ctrl)
			if tt.setup != nil {
				tt.setup(auth)
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			AuthMiddleware(auth)(sessionEcho()).ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.expectedBody)
		})
	}
}

func TestCors(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		origin   string
		method   string
		expected string
		status   int
	}{
		{name: "origem liberada", allowed: []string{"http://localhost:3000"}, origin: "http://localhost:3000", method: http.MethodGet, expected: "http://localhost:3000", status: http.StatusOK},
		{name: "origem bloqueada", allowed: []string{"http://localhost:3000"}, origin: "http://evil.example.com", method: http.MethodGet, expected: "", status: http.StatusOK},
		{name: "curinga", allowed: []string{"*"}, origin: "http://any.example.com", method: http.MethodGet, expected: "http://any.example.com", status: http.StatusOK},
		{name: "preflight", allowed: []string{"*"}, origin: "http://any.example.com", method: http.MethodOptions, expected: "http://any.example.com", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(tt.method, "/v1/dashboard", nil)
			req.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			Cors(tt.allowed)(next).ServeHTTP(recorder, req)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.expected, recorder.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.method != http.MethodOptions, called)
		})
	}
}

func TestLoggingAndPanicMiddleware(t *testing.T) {
	var correlationID string
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID = log.GetCorrelationID(r.Context())
		panic("boom")
	})

	recorder := httptest.NewRecorder()
	handler := LoggingMiddleware()(LogPanicMiddleware()(panicking))

	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), apiErrors.ErrInternalServer)
	assert.NotEmpty(t, correlationID)
	assert.Equal(t, correlationID, recorder.Header().Get(CorrelationIDHeader))
}
