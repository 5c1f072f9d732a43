package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/inventario-scomm/internal/application/analytics"
	"github.com/jhoicas/inventario-scomm/internal/application/auth"
	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/application/inventory"
	"github.com/jhoicas/inventario-scomm/internal/application/report"
	"github.com/jhoicas/inventario-scomm/internal/infrastructure/export"
	"github.com/jhoicas/inventario-scomm/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventario-scomm/internal/interfaces/http"
	"github.com/jhoicas/inventario-scomm/pkg/validator"
)

// newServer arma la API completa sobre el store en memoria con los usuarios
// por defecto (admin, editor, viewer).
func newServer(t *testing.T) *fiber.App {
	t.Helper()
	s := memory.NewStore(time.UTC)
	users := memory.NewUserRepository(s)
	products := memory.NewProductRepository(s)
	movements := memory.NewInventoryMovementRepository(s)

	userUC := auth.NewUserUseCase(users, memory.NewTxRunner(s), nil)
	_, err := userUC.SeedDefaultUsers(context.Background())
	require.NoError(t, err)

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:      userUC,
		ProductUC:   inventory.NewProductUseCase(products, inventory.NewLedgerWriter(movements, nil), nil),
		MovementsUC: inventory.NewMovementQueryUseCase(movements, time.UTC),
		DashboardUC: appanalytics.NewDashboardUseCase(memory.NewReportRepository(s), products, movements),
		ReportsUC:   appanalytics.NewReportsUseCase(memory.NewReportRepository(s)),
		CustomUC: report.NewCustomReportUseCase(memory.NewCustomReportRepository(s), products, time.UTC,
			export.NewCSVExporter(), export.NewXLSXExporter()),
		Validator: v,
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
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

func login(t *testing.T, app *fiber.App, username, password string) dto.LoginResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp)
}

func bearer(t *testing.T, app *fiber.App, username, password string) string {
	return "Bearer " + login(t, app, username, password).Token
}

func TestLogin(t *testing.T) {
	app := newServer(t)

	out := login(t, app, "editor", "editor123")
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "editor", out.User.Username)
	assert.Equal(t, "editor", out.User.Role)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "editor", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "usuario inexistente responde igual")

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "editor"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_RequiereToken(t *testing.T) {
	app := newServer(t)
	resp := call(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProducts_ViewerSoloLectura(t *testing.T) {
	app := newServer(t)
	viewer := bearer(t, app, "viewer", "viewer123")

	resp := call(t, app, http.MethodGet, "/api/products", viewer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/products", viewer, map[string]any{"name": "Widget", "quantity": 1, "price": "1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProducts_FlujoWidget(t *testing.T) {
	app := newServer(t)
	editor := bearer(t, app, "editor", "editor123")

	resp := call(t, app, http.MethodPost, "/api/products", editor, map[string]any{
		"name": "Widget", "sku": " w-1 ", "category": "Herramientas", "quantity": 10,
		"price": "2.50", "provider": "ACME", "stock_min": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	require.NotNil(t, created.SKU)
	assert.Equal(t, "W-1", *created.SKU)
	assert.Equal(t, "25", created.TotalValue.String())

	resp = call(t, app, http.MethodPut, "/api/products/"+created.ID, editor, map[string]any{
		"name": "Widget", "sku": "W-1", "category": "Herramientas", "quantity": 3,
		"price": "2.50", "provider": "ACME", "stock_min": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, "warning", updated.StockStatus)

	resp = call(t, app, http.MethodGet, "/api/inventory/movements?movement_type=salida", editor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hist := decode[dto.MovementListResponse](t, resp)
	require.Len(t, hist.Movements, 1)
	m := hist.Movements[0]
	assert.Equal(t, -7, m.QuantityChange)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 3, m.QuantityAfter)
	assert.Equal(t, "editor", m.Username)
	assert.Equal(t, "salida", hist.Filters.MovementType)

	resp = call(t, app, http.MethodPost, "/api/products/"+created.ID+"/adjust", editor, dto.AdjustStockRequest{
		Operation: dto.AdjustSubtract, Quantity: 50, Reason: "Merma",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[dto.ProductResponse](t, resp).Quantity, "la resta no baja de cero")

	resp = call(t, app, http.MethodDelete, "/api/products/"+created.ID, editor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/products/"+created.ID, editor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Producto no encontrado", decode[dto.ErrorResponse](t, resp).Message)

	resp = call(t, app, http.MethodGet, "/api/inventory/movements", editor, nil)
	hist = decode[dto.MovementListResponse](t, resp)
	assert.Equal(t, 4, hist.Pagination.TotalRecords, "creacion, salida, ajuste y eliminacion")
}

func TestProducts_Errores(t *testing.T) {
	app := newServer(t)
	editor := bearer(t, app, "editor", "editor123")

	body := map[string]any{"name": "Widget", "sku": "X1", "quantity": 1, "price": "1"}
	resp := call(t, app, http.MethodPost, "/api/products", editor, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/products", editor, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_SKU", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPost, "/api/products", editor, map[string]any{"name": "", "quantity": 1, "price": "1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.NotEmpty(t, errResp.Details)

	resp = call(t, app, http.MethodPost, "/api/products", editor, map[string]any{"name": "Tuerca", "quantity": 1, "price": "abc"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "precio no numérico")

	resp = call(t, app, http.MethodPost, "/api/products", editor, map[string]any{"name": "Tuerca", "quantity": -1, "price": "1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/products/"+uuid.NewString(), editor, map[string]any{"name": "Nada", "quantity": 1, "price": "1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/products", editor, map[string]any{"name": "Tuerca", "quantity": 3000000000, "price": "1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "cantidad mayor que INTEGER")
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProducts_AjusteQueDesborda(t *testing.T) {
	app := newServer(t)
	editor := bearer(t, app, "editor", "editor123")

	resp := call(t, app, http.MethodPost, "/api/products", editor, map[string]any{"name": "Tope", "quantity": 2147483600, "price": "1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/products/"+created.ID+"/adjust", editor, dto.AdjustStockRequest{
		Operation: dto.AdjustAdd, Quantity: 100, Reason: "Compra",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodGet, "/api/products/"+created.ID, editor, nil)
	assert.Equal(t, 2147483600, decode[dto.ProductResponse](t, resp).Quantity)
}

func TestMovements_PaginaEnorme(t *testing.T) {
	app := newServer(t)
	viewer := bearer(t, app, "viewer", "viewer123")

	resp := call(t, app, http.MethodGet, "/api/inventory/movements?page=9223372036854775807", viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.MovementListResponse](t, resp).Movements)

	resp = call(t, app, http.MethodGet, "/api/products?page=9223372036854775807", viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.ProductListResponse](t, resp).Items)
}

func TestProducts_Export(t *testing.T) {
	app := newServer(t)
	viewer := bearer(t, app, "viewer", "viewer123")

	resp := call(t, app, http.MethodGet, "/api/products/export", viewer, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario.csv")
}

func TestMovements_FechaInvalida(t *testing.T) {
	app := newServer(t)
	viewer := bearer(t, app, "viewer", "viewer123")

	resp := call(t, app, http.MethodGet, "/api/inventory/movements?date_from=2024-13-45", viewer, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodGet, "/api/inventory/movements?page=abc", viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.MovementListResponse](t, resp).Pagination.Page)
}

func TestUsers(t *testing.T) {
	app := newServer(t)
	adminLogin := login(t, app, "admin", "admin123")
	admin := "Bearer " + adminLogin.Token
	editor := bearer(t, app, "editor", "editor123")

	resp := call(t, app, http.MethodGet, "/api/users", editor, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.UserResponse](t, resp)
	require.Len(t, list, 3)
	assert.Equal(t, "admin", list[0].Username)

	resp = call(t, app, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{Username: "viewer", Password: "secreto", Role: "viewer"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_USERNAME", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{Username: "jefe", Password: "secreto", Role: "admin"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	jefe := decode[dto.UserResponse](t, resp)

	resp = call(t, app, http.MethodDelete, "/api/users/"+adminLogin.User.ID, admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "SELF_DELETE", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodDelete, "/api/users/"+jefe.ID, admin, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ADMIN_DELETE", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodDelete, "/api/users/"+uuid.NewString(), admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Usuario no encontrado", decode[dto.ErrorResponse](t, resp).Message)
}

func TestReports(t *testing.T) {
	app := newServer(t)
	editor := bearer(t, app, "editor", "editor123")

	resp := call(t, app, http.MethodPost, "/api/products", editor, map[string]any{
		"name": "Tuerca", "category": "Ferretería", "quantity": 2, "price": "1.5", "provider": "ACME", "stock_min": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/dashboard", editor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, 1, dash.Stats.TotalProducts)
	assert.Len(t, dash.AlertProducts, 1)

	resp = call(t, app, http.MethodGet, "/api/reports", editor, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reports/custom/options", editor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	opts := decode[dto.ReportOptionsDTO](t, resp)
	assert.Equal(t, []string{"Ferretería"}, opts.Categories)
	assert.Equal(t, []string{"ACME"}, opts.Providers)

	resp = call(t, app, http.MethodPost, "/api/reports/custom", editor, dto.CustomReportRequest{ReportType: "low_stock"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	custom := decode[dto.CustomReportResponse](t, resp)
	assert.Equal(t, "low_stock", custom.ReportType)
	assert.Equal(t, 1, custom.Total)

	resp = call(t, app, http.MethodPost, "/api/reports/custom/export", editor, dto.CustomReportRequest{ReportType: "general", Format: "xlsx"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Regexp(t, `reporte_general_\d{8}_\d{6}\.xlsx`, resp.Header.Get("Content-Disposition"))

	resp = call(t, app, http.MethodPost, "/api/reports/custom/export", editor, dto.CustomReportRequest{Format: "doc"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}
