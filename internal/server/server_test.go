package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/jetrefuels/fuelpos/internal/clock"
	"github.com/jetrefuels/fuelpos/internal/config"
	dispenseservice "github.com/jetrefuels/fuelpos/internal/dispense/service"
	employeedomain "github.com/jetrefuels/fuelpos/internal/employee/domain"
	employeerepo "github.com/jetrefuels/fuelpos/internal/employee/repository"
	employeeservice "github.com/jetrefuels/fuelpos/internal/employee/service"
	inventorydomain "github.com/jetrefuels/fuelpos/internal/inventory/domain"
	inventoryrepo "github.com/jetrefuels/fuelpos/internal/inventory/repository"
	inventoryservice "github.com/jetrefuels/fuelpos/internal/inventory/service"
	ledgerdomain "github.com/jetrefuels/fuelpos/internal/ledger/domain"
	ledgerrepo "github.com/jetrefuels/fuelpos/internal/ledger/repository"
	ledgerservice "github.com/jetrefuels/fuelpos/internal/ledger/service"
	"github.com/jetrefuels/fuelpos/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const testAdminToken = "station-master"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(
		&employeedomain.Employee{},
		&inventorydomain.FuelGrade{},
		&ledgerdomain.TransactionRecord{},
	))

	log := zaptest.NewLogger(t)
	fc := clock.NewFakeClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	require.NoError(t, seed.EnsureDefaults(context.Background(), conn, log, fc, node))

	employeeRepo := employeerepo.Provide()
	inventoryRepo := inventoryrepo.Provide()
	ledgerRepo := ledgerrepo.Provide()

	cfg := config.Config{
		AppName:     "fuelpos",
		AppVersion:  "test",
		CompanyName: "Jet Refuels",
		AdminToken:  testAdminToken,
	}

	return New(Params{
		Config: cfg,
		Log:    log,
		Employees: employeeservice.NewService(employeeservice.Params{
			DB: conn, Log: log, Clock: fc, Repo: employeeRepo,
		}),
		Inventory: inventoryservice.NewService(inventoryservice.Params{
			DB: conn, Log: log, Clock: fc, Node: node, Repo: inventoryRepo,
		}),
		Ledger: ledgerservice.NewService(ledgerservice.Params{
			DB: conn, Log: log, Repo: ledgerRepo,
		}),
		Dispense: dispenseservice.NewService(dispenseservice.Params{
			DB: conn, Log: log, Clock: fc, Node: node,
			Grades: inventoryRepo, Ledger: ledgerRepo, Employees: employeeRepo,
		}),
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any, header map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec, body := doJSON(t, srv, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/auth/login", gin.H{
		"employee_id": 123456, "password": "pluto_pass",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pluto", body["name"])

	rec, body = doJSON(t, srv, http.MethodPost, "/auth/login", gin.H{
		"employee_id": 123456, "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", body["error"])
}

func TestListGrades(t *testing.T) {
	srv := newTestServer(t)
	rec, body := doJSON(t, srv, http.MethodGet, "/api/grades", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	grades := body["grades"].([]any)
	assert.Len(t, grades, 3)
}

func TestDispense_HappyPath(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/dispense", gin.H{
		"employee_id": 123456,
		"password":    "pluto_pass",
		"grade":       "Diesel",
		"amount":      "175.00",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	inv := body["invoice"].(map[string]any)
	assert.Equal(t, "10.00", inv["liters"])
	assert.Equal(t, "175.00", inv["amount"])
	assert.Equal(t, "Pluto", inv["employee_name"])

	receipt := body["receipt"].(string)
	assert.Contains(t, receipt, "Jet Refuels")
	assert.Contains(t, receipt, "Total:      175.00")
}

func TestDispense_InsufficientStock(t *testing.T) {
	srv := newTestServer(t)

	// Drain the diesel tank through the admin surface first.
	rec, _ := doJSON(t, srv, http.MethodPatch, "/admin/grades/diesel/stock", gin.H{
		"stock_liters": "0",
	}, map[string]string{"X-Admin-Token": testAdminToken})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/dispense", gin.H{
		"employee_id": 123456,
		"password":    "pluto_pass",
		"grade":       "diesel",
		"amount":      "1.00",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient_stock", body["error"])
	assert.Equal(t, "diesel", body["grade"])
	assert.Equal(t, "0.00", body["available_liters"])
}

func TestDispense_BadInput(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/dispense", gin.H{
		"employee_id": 123456,
		"password":    "pluto_pass",
		"grade":       "diesel",
		"amount":      "-5.00",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_amount", body["error"])

	rec, body = doJSON(t, srv, http.MethodPost, "/api/dispense", gin.H{
		"employee_id": 123456,
		"password":    "pluto_pass",
		"grade":       "jetfuel",
		"amount":      "10.00",
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_grade", body["error"])
}

func TestReportTotals(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/api/dispense", gin.H{
		"employee_id": 123456,
		"password":    "pluto_pass",
		"grade":       "diesel",
		"amount":      "175.00",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/reports/totals?group_by=grade", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	totals := body["totals"].([]any)
	require.Len(t, totals, 1)
	row := totals[0].(map[string]any)
	assert.Equal(t, "diesel", row["key"])

	rec, body = doJSON(t, srv, http.MethodGet, "/api/reports/totals?group_by=vehicle", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_group_by", body["error"])
}

func TestAdmin_TokenRequired(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/admin/grades", gin.H{
		"name": "jetfuel", "unit_price": "99.99", "stock_liters": "100.00",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_admin_token", body["error"])

	rec, _ = doJSON(t, srv, http.MethodPost, "/admin/grades", gin.H{
		"name": "jetfuel", "unit_price": "99.99", "stock_liters": "100.00",
	}, map[string]string{"X-Admin-Token": testAdminToken})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdmin_ManageEmployees(t *testing.T) {
	srv := newTestServer(t)
	admin := map[string]string{"X-Admin-Token": testAdminToken}

	rec, _ := doJSON(t, srv, http.MethodPost, "/admin/employees", gin.H{
		"id": 555555, "name": "Goofy", "password": "goofy_pass",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/auth/login", gin.H{
		"employee_id": 555555, "password": "goofy_pass",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodDelete, "/admin/employees/555555", nil, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodDelete, "/admin/employees/555555", nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_SetPrice(t *testing.T) {
	srv := newTestServer(t)
	admin := map[string]string{"X-Admin-Token": testAdminToken}

	rec, body := doJSON(t, srv, http.MethodPatch, "/admin/grades/diesel/price", gin.H{
		"unit_price": "20.00",
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "20.00", body["unit_price"])

	rec, body = doJSON(t, srv, http.MethodPatch, "/admin/grades/jetfuel/price", gin.H{
		"unit_price": "20.00",
	}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_grade", body["error"])
}
