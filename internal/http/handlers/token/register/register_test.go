package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRegistry реализует интерфейс register.Registry
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Add(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockRegistry)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация токена",
			body: `{"token":"ExponentPushToken[abc123]"}`,
			setupMock: func(m *MockRegistry) {
				m.On("Add", mock.Anything, "ExponentPushToken[abc123]").Return(int64(3), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_tokens":3`,
		},
		{
			name:           "некорректный JSON",
			body:           `{token`,
			setupMock:      func(_ *MockRegistry) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует токен",
			body:           `{}`,
			setupMock:      func(_ *MockRegistry) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"no token provided"}`,
		},
		{
			name: "ошибка реестра",
			body: `{"token":"ExponentPushToken[abc123]"}`,
			setupMock: func(m *MockRegistry) {
				m.On("Add", mock.Anything, "ExponentPushToken[abc123]").
					Return(int64(0), errors.New("redis unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not register token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRegistry := new(MockRegistry)
			tt.setupMock(mockRegistry)

			handler := New(logger, mockRegistry)

			req := httptest.NewRequest(http.MethodPost, "/register-token", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockRegistry.AssertExpectations(t)
		})
	}
}
