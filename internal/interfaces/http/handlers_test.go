package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/bootstrap"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/internal/seed"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria con los datos de ejemplo
// ──────────────────────────────────────────────────────────────────────────────

type apiEnv struct {
	app      *fiber.App
	adminTok string
	opTok    string
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	prom := metrics.New()
	svc := bootstrap.NewServices(bootstrap.NewMemoryStore(true), bootstrap.ServiceOptions{
		JWT:     auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		Metrics: prom,
	})
	_, err := seed.SampleData(context.Background(), svc, nil)
	require.NoError(t, err)

	app := apphttp.NewApp(apphttp.ServerOptions{
		AppName:        "stock-ledger-test",
		Observer:       prom,
		MetricsHandler: prom.Handler(),
	}, apphttp.RouterDeps{
		AuthUC:      svc.Auth,
		ProductUC:   svc.Products,
		LocationUC:  svc.Locations,
		MovementUC:  svc.Movements,
		BalanceUC:   svc.Balances,
		ExportUC:    svc.Export,
		DashboardUC: svc.Dashboard,
		JWTSecret:   testJWTSecret,
		Session:     apphttp.SessionCookie{Name: testCookieName},
	})

	env := &apiEnv{app: app}
	env.adminTok = env.login(t, seed.AdminUsername, seed.AdminPassword)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "operador", Email: "op@example.com", Password: "secreto123", ConfirmPassword: "secreto123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	env.opTok = env.login(t, "operador", "secreto123")
	return env
}

func (e *apiEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_LoginFijaCookieHttpOnly(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "admin123"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.NotEmpty(t, session.Value)
}

func TestAuth_CredencialesInvalidas(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp2 := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: "incorrecta"})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestAuth_RegistroPasswordsDistintas(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "otro", Email: "otro@example.com", Password: "secreto123", ConfirmPassword: "secreto124",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuth_RegistroUsernameRepetido(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "admin", Email: "nuevo@example.com", Password: "secreto123", ConfirmPassword: "secreto123",
	})
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "USERNAME_TAKEN", out.Code)
}

func TestAuth_Me(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodGet, "/api/auth/me", env.opTok, nil)
	out := decode[dto.UserResponse](t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "operador", out.Username)
	assert.Equal(t, "operator", out.Role)
}

func TestAuth_RutaProtegidaSinToken(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodGet, "/api/products", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_CrearConStockInicial(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/products", env.opTok, dto.CreateProductRequest{
		ID: "P004", Name: "Monitor", Category: "Electronics", InitialLocationID: "L002", InitialQty: 7,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/inventory/locations-with-stock/P004", env.opTok, nil)
	out := decode[dto.LocationsWithStockResponse](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "L002", out.Items[0].LocationID)
	assert.Equal(t, int64(7), out.Items[0].Balance)
}

func TestProductos_UbicacionInicialInexistente(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/products", env.opTok, dto.CreateProductRequest{
		ID: "P005", Name: "Teclado", InitialLocationID: "L999", InitialQty: 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductos_Duplicado(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/products", env.opTok, dto.CreateProductRequest{ID: "P001", Name: "Otra"})
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", out.Code)
}

func TestUbicaciones_ListarYRenombrar(t *testing.T) {
	env := newAPIEnv(t)
	name := "Almacén Central"
	resp := env.do(t, http.MethodPut, "/api/locations/L001", env.opTok, dto.UpdateLocationRequest{Name: &name})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/locations", env.opTok, nil)
	list := decode[dto.LocationListResponse](t, resp)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, "Almacén Central", list.Items[0].Name)

	resp = env.do(t, http.MethodGet, "/api/locations/L404", env.opTok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientos_StockInsuficienteIncluyeCantidades(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/movements", env.opTok, dto.CreateMovementRequest{
		ProductID: "P001", FromLocation: "L001", ToLocation: "L002", Quantity: 100,
	})
	out := decode[dto.StockErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	assert.Equal(t, int64(40), out.Available)
	assert.Equal(t, int64(100), out.Requested)
}

func TestMovimientos_OrigenSinStock(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/movements", env.opTok, dto.CreateMovementRequest{
		ProductID: "P003", FromLocation: "L001", Quantity: 1,
	})
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "SOURCE_HAS_NO_STOCK", out.Code)
}

func TestMovimientos_MalFormado(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/movements", env.opTok, dto.CreateMovementRequest{
		ProductID: "P001", FromLocation: "L001", ToLocation: "L001", Quantity: 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMovimientos_IDGeneradoYListado(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodPost, "/api/movements", env.opTok, dto.CreateMovementRequest{
		ProductID: "P002", FromLocation: "L001", Quantity: 5,
	})
	created := decode[dto.MovementResponse](t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, strings.HasPrefix(created.ID, "MOV-"))
	assert.Equal(t, "ISSUE", created.Kind)
	assert.Equal(t, "Chair", created.ProductName)

	resp = env.do(t, http.MethodGet, "/api/movements?limit=2", env.opTok, nil)
	list := decode[dto.MovementListResponse](t, resp)
	require.Len(t, list.Items, 2)
	assert.Equal(t, created.ID, list.Items[0].ID)
}

func TestMovimientos_EdicionSoloAdmin(t *testing.T) {
	env := newAPIEnv(t)
	body := dto.UpdateMovementRequest{ProductID: "P002", ToLocation: "L001", Quantity: 35}

	resp := env.do(t, http.MethodPut, "/api/movements/M002", env.opTok, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/api/movements/M002", env.adminTok, body)
	out := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(35), out.Quantity)
}

func TestMovimientos_BorradoQueDejaSaldoNegativo(t *testing.T) {
	env := newAPIEnv(t)
	// M001 es la entrada de la que sale el traslado M003
	resp := env.do(t, http.MethodDelete, "/api/movements/M001", env.adminTok, nil)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NEGATIVE_BALANCE", out.Code)

	resp = env.do(t, http.MethodDelete, "/api/movements/M003", env.adminTok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes, dashboard y endpoints técnicos
// ──────────────────────────────────────────────────────────────────────────────

func TestReporte_JSON(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodGet, "/api/reports/balance", env.opTok, nil)
	out := decode[dto.BalanceReportResponse](t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 3, out.Total)
	assert.Equal(t, dto.BalanceRowDTO{ProductID: "P001", ProductName: "Laptop", LocationID: "L001", LocationName: "Warehouse A", Balance: 40}, out.Items[0])
	assert.Equal(t, "L003", out.Items[1].LocationID)
	assert.Equal(t, "P002", out.Items[2].ProductID)
}

func TestReporte_Descargas(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodGet, "/api/reports/balance?format=xlsx", env.opTok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp2 := env.do(t, http.MethodGet, "/api/reports/balance?format=pdf", env.opTok, nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, "application/pdf", resp2.Header.Get("Content-Type"))

	resp3 := env.do(t, http.MethodGet, "/api/reports/balance?format=docx", env.opTok, nil)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestDashboard_Resumen(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodGet, "/api/dashboard/summary", env.opTok, nil)
	out := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 3, out.TotalLocations)
	assert.Equal(t, 3, out.TotalMovements)
	assert.Len(t, out.RecentMovements, 3)
}

func TestHealthYMetrics(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.do(t, http.MethodGet, "/health", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "stock_ledger_movements_recorded_total")
	assert.Contains(t, string(body), "stock_ledger_http_requests_total")
}
