package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tienda/internal/config"
	"tienda/internal/domain/model"
	"tienda/internal/handler"
	"tienda/internal/mocks"
	auth "tienda/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

var testCfg = config.Config{JWTSecret: testSecret}

// 本物のissuerでアクセストークンを作る
func bearer(t *testing.T, staffID int64, role model.Role) string {
	t.Helper()
	tok, _, err := auth.NewJWTIssuer(testSecret, time.Hour).Issue(staffID, role, time.Now())
	require.NoError(t, err)
	return tok
}

// StaffActiveGuardが引く稼働中スタッフ
func activeStaff(staffID int64, role model.Role) *mocks.StaffRepoMock {
	staffRepo := new(mocks.StaffRepoMock)
	staffRepo.On("FindByID", mock.Anything, staffID).Return(&model.Staff{ID: staffID, Role: role, IsActive: true}, nil)
	return staffRepo
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var v handler.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, rec.Body.String())
	}
	return v
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, rec.Body.String())
	}
	return v
}
