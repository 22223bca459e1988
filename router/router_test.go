package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"budgetbook/config"
	"budgetbook/database"
	"budgetbook/ledger"

	"github.com/DATA-DOG/go-sqlmock"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Mode: "test"},
		Ledger:    config.LedgerConfig{PageSize: 20, RecentLimit: 10},
		RateLimit: config.RateLimitConfig{WriteMax: 2, WriteWindow: time.Minute},
	}
}

func newTestDeps(t *testing.T) (Deps, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	log, _ := logtest.NewNullLogger()
	return Deps{
		Ledger: ledger.New(database.NewGateway(gormDB), config.LedgerConfig{PageSize: 20, RecentLimit: 10}),
		DB:     okPinger{},
		Log:    log,
	}, mock
}

func TestSetupRouter_Routes(t *testing.T) {
	deps, _ := newTestDeps(t)
	r, err := SetupRouter(t.Context(), newTestConfig(), deps)
	require.NoError(t, err)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"GET /", "GET /health", "GET /verify",
		"GET /accounts", "GET /accounts/add", "POST /accounts/add", "GET /accounts/edit", "POST /accounts/edit",
		"GET /categories", "GET /categories/add", "POST /categories/add", "GET /categories/edit", "POST /categories/edit",
		"GET /transactions", "GET /transactions/add", "POST /transactions/add", "GET /transactions/edit", "POST /transactions/edit",
		"GET /budgets", "GET /budgets/add", "POST /budgets/add",
		"GET /cashflows", "GET /cashflows/add", "POST /cashflows/add", "GET /cashflows/edit", "POST /cashflows/edit",
		"GET /export/csv", "GET /export/excel",
	}
	for _, route := range want {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestSetupRouter_NotImplementedAndHealth(t *testing.T) {
	deps, _ := newTestDeps(t)
	r, err := SetupRouter(t.Context(), newTestConfig(), deps)
	require.NoError(t, err)

	for _, path := range []string{"/verify", "/cashflows/edit"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotImplemented, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_WriteRateLimit(t *testing.T) {
	deps, mock := newTestDeps(t)
	r, err := SetupRouter(t.Context(), newTestConfig(), deps)
	require.NoError(t, err)

	post := func() int {
		form := url.Values{"accountname": {""}}
		req := httptest.NewRequest(http.MethodPost, "/accounts/add", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// 校验失败的提交同样计数
	assert.Equal(t, http.StatusBadRequest, post())
	assert.Equal(t, http.StatusBadRequest, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
	require.NoError(t, mock.ExpectationsWereMet())
}
