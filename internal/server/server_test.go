package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tienda/internal/config"
	"tienda/internal/domain/model"
	"tienda/internal/handler"
	"tienda/internal/mocks"
	"tienda/internal/server"
	"tienda/internal/usecase"
	auth "tienda/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type clockNow struct{}

func (clockNow) Now() time.Time { return time.Now() }

func newTestServer(t *testing.T, staffRepo *mocks.StaffRepoMock) *echo.Echo {
	t.Helper()

	cfg := config.Config{JWTSecret: "server-test-secret", AccessTokenTTL: time.Hour, GoEnv: "test", LowStockThreshold: 10}
	customers := new(mocks.CustomerRepoMock)
	products := new(mocks.ProductRepoMock)
	audits := new(mocks.AuditRepoMock)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	return server.New(cfg, staffRepo, server.Handlers{
		Auth: handler.NewAuthHandler(
			auth.NewRegisterStaffUsecase(staffRepo, auth.NewBcryptPasswordHasher(4), clockNow{}),
			auth.NewLoginUsecase(staffRepo, auth.NewBcryptPasswordVerifier(), issuer, clockNow{}),
		),
		Customer: handler.NewCustomerHandler(usecase.NewCustomerUsecase(customers, audits)),
		Product:  handler.NewProductHandler(usecase.NewProductUsecase(products, audits)),
		Sale:     handler.NewSaleHandler(usecase.NewSaleUsecase(new(mocks.SaleRepoMock), customers, products)),
		Order:    handler.NewOrderHandler(usecase.NewOrderUsecase(mocks.NewMemoryTx(), products, customers, clockNow{})),
		Report:   handler.NewReportHandler(usecase.NewReportUsecase(new(mocks.ReportRepoMock), cfg.LowStockThreshold)),
		Audit:    handler.NewAuditHandler(usecase.NewAuditUsecase(audits)),
	})
}

func TestServer_Healthz_SetsRequestID(t *testing.T) {
	e := newTestServer(t, new(mocks.StaffRepoMock))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}

// /auth以外はトークン必須
func TestServer_ProtectedRoutes(t *testing.T) {
	e := newTestServer(t, new(mocks.StaffRepoMock))

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/customers"},
		{http.MethodGet, "/products/options"},
		{http.MethodGet, "/sales"},
		{http.MethodGet, "/orders/draft"},
		{http.MethodPost, "/orders/draft/confirm"},
		{http.MethodGet, "/reports/summary"},
		{http.MethodGet, "/admin/audit-logs"},
	} {
		req := httptest.NewRequest(r.method, r.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, r.method+" "+r.path)
	}
}

// 登録 → ログイン → トークンで下書きを見る
func TestServer_LoginThenDraft(t *testing.T) {
	staffRepo := new(mocks.StaffRepoMock)
	var saved *model.Staff
	staffRepo.On("FindByEmail", mock.Anything, "ana@tienda.pe").Return(nil, nil).Once()
	staffRepo.On("Count", mock.Anything).Return(int64(0), nil)
	staffRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Staff")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*model.Staff)
		saved.ID = 1
	}).Return(nil)
	e := newTestServer(t, staffRepo)

	rec := doJSON(e, http.MethodPost, "/auth/register", "", `{"email":"ana@tienda.pe","password":"caja-registradora-7"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, saved)

	staffRepo.On("FindByEmail", mock.Anything, "ana@tienda.pe").Return(saved, nil)
	staffRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Staff")).Return(nil)
	staffRepo.On("FindByID", mock.Anything, int64(1)).Return(saved, nil)

	rec = doJSON(e, http.MethodPost, "/auth/login", "", `{"email":"ana@tienda.pe","password":"caja-registradora-7"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[auth.LoginOutput](t, rec)
	assert.Equal(t, model.RoleAdmin, login.Staff.Role)

	rec = doJSON(e, http.MethodGet, "/orders/draft", login.Token.AccessToken, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "EMPTY", decode[usecase.DraftOutput](t, rec).State)
}
