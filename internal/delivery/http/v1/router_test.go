package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"celebrai-backend/config"
	"celebrai-backend/internal/delivery/http/middleware"
	v1 "celebrai-backend/internal/delivery/http/v1"
	"celebrai-backend/internal/domain"
	"celebrai-backend/internal/usecase"
	"celebrai-backend/pkg/apperror"
	"celebrai-backend/pkg/auth"
)

const jwtSecret = "test-secret"

type MockNotificationUC struct {
	mock.Mock
}

func (m *MockNotificationUC) NotifyContractSigned(ctx context.Context, req *domain.ContractSignedRequest) (*domain.NotificationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationResult), args.Error(1)
}

type MockContractUC struct {
	mock.Mock
}

func (m *MockContractUC) RenderContract(ctx context.Context, ownerID, contractID string) (*domain.RenderedContract, error) {
	args := m.Called(ctx, ownerID, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenderedContract), args.Error(1)
}

func (m *MockContractUC) GenerateContract(ctx context.Context, ownerID string, data *domain.ContractData) (*domain.RenderedContract, error) {
	args := m.Called(ctx, ownerID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenderedContract), args.Error(1)
}

type MockDashboardUC struct {
	mock.Mock
}

func (m *MockDashboardUC) GetStats(ctx context.Context, ownerID string) (*domain.DashboardStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockDashboardUC) ExportAppointments(ctx context.Context, ownerID string) ([]byte, string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type fixture struct {
	router    *gin.Engine
	notify    *MockNotificationUC
	contracts *MockContractUC
	dashboard *MockDashboardUC
}

const anonKey = "anon-key"

func newFixture() *fixture {
	return newFixtureWith(func(*config.Config) {})
}

func newFixtureWith(tweak func(*config.Config)) *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		notify:    new(MockNotificationUC),
		contracts: new(MockContractUC),
		dashboard: new(MockDashboardUC),
	}
	cfg := &config.Config{
		Mode:                     gin.TestMode,
		FrontendURL:              "https://app.celebrai.com.br",
		SupabaseAnonKey:          anonKey,
		OtelServiceName:          "test",
		RateLimitWindowSeconds:   60,
		RateLimitNotifyThreshold: 100,
		RateLimitAdminThreshold:  100,
	}
	tweak(cfg)
	f.router = v1.NewRouter(v1.RouterDeps{
		NotificationUC: f.notify,
		ContractUC:     f.contracts,
		DashboardUC:    f.dashboard,
		HealthUC:       usecase.NewHealthUsecase(nil),
		Verifier:       auth.NewVerifier(jwtSecret, nil),
		RateLimiter:    middleware.NewRateLimiter(nil),
		Config:         cfg,
	})
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return "Bearer " + s
}

const notifyURL = "/v1/functions/send-contract-signed-email"

func notifyRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, notifyURL, strings.NewReader(body))
	req.Header.Set("apikey", anonKey)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestNotifyPreflight(t *testing.T) {
	f := newFixture()

	w := f.do(httptest.NewRequest(http.MethodOptions, notifyURL, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", w.Header().Get("Access-Control-Allow-Headers"))
	f.notify.AssertNotCalled(t, "NotifyContractSigned", mock.Anything, mock.Anything)
}

func TestNotifyMalformedBody(t *testing.T) {
	f := newFixture()

	w := f.do(notifyRequest("{not json"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	f.notify.AssertNotCalled(t, "NotifyContractSigned", mock.Anything, mock.Anything)
}

func TestNotifySuccess(t *testing.T) {
	f := newFixture()
	f.notify.On("NotifyContractSigned", mock.Anything, mock.MatchedBy(func(req *domain.ContractSignedRequest) bool {
		return req.ContractID == "c-1" && req.ClientEmail == "" && req.TenantID == "t-1"
	})).Return(&domain.NotificationResult{Owner: domain.SendResult{Attempted: true, Sent: true}}, nil)

	payload := `{"contractId":"c-1","clientName":"Ana","tenantId":"t-1","signedAt":"2026-03-05T15:04:05Z"}`
	w := f.do(notifyRequest(payload))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Emails sent successfully"}`, w.Body.String())
	f.notify.AssertExpectations(t)
}

func TestNotifySendFailure(t *testing.T) {
	f := newFixture()
	f.notify.On("NotifyContractSigned", mock.Anything, mock.Anything).
		Return(&domain.NotificationResult{}, errors.New("client email: Failed to send email: invalid to"))

	payload := `{"contractId":"c-1","clientName":"Ana","clientEmail":"bad","tenantId":"t-1","signedAt":"x"}`
	w := f.do(notifyRequest(payload))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"client email: Failed to send email: invalid to"}`, w.Body.String())
}

func TestNotifyRequiresKey(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodPost, notifyURL, strings.NewReader(`{"contractId":"c-1","tenantId":"t-1"}`))
	w := f.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"error":"Missing or invalid authorization"}`, w.Body.String())
	f.notify.AssertNotCalled(t, "NotifyContractSigned", mock.Anything, mock.Anything)
}

func TestNotifyRateLimitIgnoresForwardedFor(t *testing.T) {
	f := newFixtureWith(func(cfg *config.Config) { cfg.RateLimitNotifyThreshold = 2 })
	f.notify.On("NotifyContractSigned", mock.Anything, mock.Anything).Return(&domain.NotificationResult{}, nil)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := notifyRequest(`{"contractId":"c-1","clientName":"Ana","tenantId":"t-1","signedAt":"x"}`)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		codes = append(codes, f.do(req).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	f.notify.AssertNumberOfCalls(t, "NotifyContractSigned", 2)
}

func TestNotifyRateLimitTrustsConfiguredProxy(t *testing.T) {
	f := newFixtureWith(func(cfg *config.Config) {
		cfg.RateLimitNotifyThreshold = 1
		cfg.TrustedProxies = []string{"203.0.113.0/24"}
	})
	f.notify.On("NotifyContractSigned", mock.Anything, mock.Anything).Return(&domain.NotificationResult{}, nil)

	for i := 0; i < 3; i++ {
		req := notifyRequest(`{"contractId":"c-1","clientName":"Ana","tenantId":"t-1","signedAt":"x"}`)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		assert.Equal(t, http.StatusOK, f.do(req).Code)
	}
}

func TestAdminRequiresAuth(t *testing.T) {
	f := newFixture()

	w := f.do(httptest.NewRequest(http.MethodGet, "/v1/admin/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	f.dashboard.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything)
}

func TestAdminPreflight(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodOptions, "/v1/admin/contracts/abc/pdf", nil)
	req.Header.Set("Origin", "https://app.celebrai.com.br")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := f.do(req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.celebrai.com.br", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDownloadContract(t *testing.T) {
	f := newFixture()
	f.contracts.On("RenderContract", mock.Anything, "owner-1", "c-9").
		Return(&domain.RenderedContract{Filename: "contrato-ana-lima.pdf", PDF: []byte("%PDF-1.3 test")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/contracts/c-9/pdf", nil)
	req.Header.Set("Authorization", bearer(t, "owner-1"))
	w := f.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=contrato-ana-lima.pdf`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3 test", w.Body.String())
}

func TestDownloadContractNotFound(t *testing.T) {
	f := newFixture()
	f.contracts.On("RenderContract", mock.Anything, "owner-1", "c-9").Return(nil, apperror.NotFound("Contract not found"))

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/contracts/c-9/pdf", nil)
	req.Header.Set("Authorization", bearer(t, "owner-1"))
	w := f.do(req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Contract not found")
}

func TestGenerateContractBadJSON(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/contracts/pdf", bytes.NewBufferString("[]"))
	req.Header.Set("Authorization", bearer(t, "owner-1"))
	w := f.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.contracts.AssertNotCalled(t, "GenerateContract", mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture()
	f.dashboard.On("GetStats", mock.Anything, "owner-1").Return(&domain.DashboardStats{TotalAppointments: 3}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/dashboard", nil)
	req.Header.Set("Authorization", bearer(t, "owner-1"))
	w := f.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool                  `json:"success"`
		Data    domain.DashboardStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.Data.TotalAppointments)
}

func TestHealth(t *testing.T) {
	f := newFixture()
	w := f.do(httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
