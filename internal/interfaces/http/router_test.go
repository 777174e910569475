package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/billing"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
	httpiface "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/jwt"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const testSecret = "secreto-de-pruebas"

// testAPI aplicación completa sobre memstore, con el documento de roles
// sembrado: alice admin, bob user, eve guest (autenticada pero sin rol).
type testAPI struct {
	app   *fiber.App
	store *memstore.Memstore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	api := newAPIOver(memstore.New())
	require.NoError(t, api.store.Set(context.Background(), entity.RolesDocPath, map[string]any{
		entity.FieldAdmins: []any{"alice"},
		entity.FieldUsers:  []any{"bob"},
	}))
	return api
}

func newAPIOver(store *memstore.Memstore) *testAPI {
	verifier := auth.NewTokenVerifier(testSecret, memstore.NewRevocations())
	app := fiber.New()
	httpiface.Router(app, httpiface.RouterDeps{
		Verifier:    verifier,
		Resolver:    auth.NewRoleResolver(store),
		ProductUC:   usecase.NewProductUseCase(store),
		WarehouseUC: usecase.NewWarehouseUseCase(store),
		CustomerUC:  billing.NewCustomerUseCase(store),
		InvoiceUC:   billing.NewInvoiceUseCase(store),
		ReconcileUC: inventory.NewReconcileUseCase(store, logger.Nop()),
	})
	return &testAPI{app: app, store: store}
}

// do ejecuta una petición con Bearer token del sujeto; subject vacío omite el header.
func (a *testAPI) do(t *testing.T, method, target, subject string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if subject != "" {
		token, err := jwt.Generate(testSecret, subject, "almacen-api", 60)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &body)
	return body.Code
}

func TestRouter_TokenRequerido(t *testing.T) {
	api := newTestAPI(t)

	// Sin header.
	resp := api.do(t, fiber.MethodGet, "/api/products", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))

	// Esquema incorrecto.
	req := httptest.NewRequest(fiber.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))

	// Token basura.
	req = httptest.NewRequest(fiber.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	resp, err = api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestRouter_GatesDeRol(t *testing.T) {
	api := newTestAPI(t)

	// user lee pero no muta.
	resp := api.do(t, fiber.MethodGet, "/api/products", "bob", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = api.do(t, fiber.MethodPost, "/api/products", "bob", map[string]any{"name": "café"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	// guest autenticada no pasa ningún gate de rol.
	resp = api.do(t, fiber.MethodGet, "/api/products", "eve", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// pero sí consulta su identidad.
	resp = api.do(t, fiber.MethodGet, "/api/auth/me", "eve", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	decodeBody(t, resp, &me)
	assert.Equal(t, "eve", me.UserID)
	assert.Equal(t, string(entity.RoleGuest), me.Role)

	// admin muta.
	resp = api.do(t, fiber.MethodPost, "/api/products", "alice", map[string]any{"name": "café"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Sin documento de roles toda ruta con gate responde 500, nunca un guest implícito.
func TestRouter_RolesAusentes(t *testing.T) {
	bare := newAPIOver(memstore.New())

	resp := bare.do(t, fiber.MethodGet, "/api/products", "alice", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "ROLES_MISSING", errorCode(t, resp))
}

func TestRouter_LogoutRevocaTokensPrevios(t *testing.T) {
	api := newTestAPI(t)

	token, err := jwt.Generate(testSecret, "bob", "almacen-api", 60)
	require.NoError(t, err)
	withToken := func(method, target string) *http.Response {
		req := httptest.NewRequest(method, target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := api.app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := withToken(fiber.MethodGet, "/api/products")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = withToken(fiber.MethodPost, "/api/auth/logout")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// El mismo token deja de valer.
	resp = withToken(fiber.MethodGet, "/api/products")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestRouter_FlujoDeProductos(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, fiber.MethodPost, "/api/products", "alice",
		map[string]any{"name": "café", "sku": "CAF-001"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)

	// El user lo ve en la lista con el cuerpo de forma libre aplanado.
	resp = api.do(t, fiber.MethodGet, "/api/products", "bob", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0]["id"])
	assert.Equal(t, "CAF-001", list[0]["sku"])

	// Soft-disable: desaparece de la lista pero sigue legible por id.
	resp = api.do(t, fiber.MethodDelete, "/api/products/"+created.ID, "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = api.do(t, fiber.MethodGet, "/api/products", "bob", nil)
	decodeBody(t, resp, &list)
	assert.Empty(t, list)

	resp = api.do(t, fiber.MethodGet, "/api/products/"+created.ID, "bob", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var doc map[string]any
	decodeBody(t, resp, &doc)
	assert.Equal(t, true, doc["disabled"])
	assert.Equal(t, "alice", doc["disabledBy"])

	// Producto inexistente.
	resp = api.do(t, fiber.MethodGet, "/api/products/no-existe", "bob", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_ReconciliacionEInventario(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, fiber.MethodPost, "/api/warehouses", "alice", map[string]any{"name": "central"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)

	// Solo admin reconcilia.
	body := map[string]any{
		"warehouseId": created.ID,
		"updates":     []map[string]any{{"productId": "p1", "quantity": 5}},
	}
	resp = api.do(t, fiber.MethodPost, "/api/inventory/reconcile", "bob", body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = api.do(t, fiber.MethodPost, "/api/inventory/reconcile", "alice", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Cantidad no numérica: 400 y nada aplicado.
	resp = api.do(t, fiber.MethodPost, "/api/inventory/reconcile", "alice", map[string]any{
		"warehouseId": created.ID,
		"updates":     []map[string]any{{"productId": "p1", "quantity": "muchos"}},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Bodega inexistente: 404.
	resp = api.do(t, fiber.MethodPost, "/api/inventory/reconcile", "alice", map[string]any{
		"warehouseId": "fantasma",
		"updates":     []map[string]any{{"productId": "p1", "quantity": 1}},
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// El inventario refleja el único delta aplicado.
	resp = api.do(t, fiber.MethodGet, "/api/warehouses/"+created.ID+"/inventory", "bob", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var inv struct {
		WarehouseID string           `json:"warehouseId"`
		Items       []map[string]any `json:"items"`
	}
	decodeBody(t, resp, &inv)
	assert.Equal(t, created.ID, inv.WarehouseID)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "p1", inv.Items[0]["productId"])
	assert.Equal(t, float64(5), inv.Items[0]["quantity"])
}

func TestRouter_DetalleDeBodegaConInventarioAnidado(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, fiber.MethodPost, "/api/warehouses", "alice", map[string]any{"name": "central"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)

	// Bodega recién creada: detalle sin colecciones anidadas.
	resp = api.do(t, fiber.MethodGet, "/api/warehouses/"+created.ID, "bob", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var detail struct {
		Warehouse   map[string]any   `json:"warehouse"`
		Collections []map[string]any `json:"collections"`
	}
	decodeBody(t, resp, &detail)
	assert.Equal(t, "central", detail.Warehouse["name"])
	assert.Empty(t, detail.Collections)

	// Con inventario, el detalle lo incluye anidado.
	resp = api.do(t, fiber.MethodPost, "/api/inventory/reconcile", "alice", map[string]any{
		"warehouseId": created.ID,
		"updates":     []map[string]any{{"productId": "p1", "quantity": 3}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = api.do(t, fiber.MethodGet, "/api/warehouses/"+created.ID, "bob", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &detail)
	require.Len(t, detail.Collections, 1)
	assert.Equal(t, "inventory", detail.Collections[0]["collection"])

	// Bodega inexistente.
	resp = api.do(t, fiber.MethodGet, "/api/warehouses/fantasma", "bob", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_FacturasPorTipo(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, fiber.MethodPost, "/api/customers", "alice", map[string]any{"name": "Acme S.A.S."})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var customer struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &customer)

	invoice := map[string]any{
		"companyId":   customer.ID,
		"warehouseId": "w1",
		"products":    []map[string]any{{"productId": "p1", "quantity": 2}},
	}
	resp = api.do(t, fiber.MethodPost, "/api/invoices/incoming", "alice", invoice)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// La factura aparece solo en su tipo.
	resp = api.do(t, fiber.MethodGet, "/api/invoices/incoming", "bob", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	company := list[0]["company"].(map[string]any)
	assert.Equal(t, "Acme S.A.S.", company["name"])

	resp = api.do(t, fiber.MethodGet, "/api/invoices/outgoing", "bob", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &list)
	assert.Empty(t, list)

	// Empresa desconocida: 400.
	resp = api.do(t, fiber.MethodPost, "/api/invoices/outgoing", "alice", map[string]any{
		"companyId":   "fantasma",
		"warehouseId": "w1",
		"products":    []map[string]any{{"productId": "p1", "quantity": 2}},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
