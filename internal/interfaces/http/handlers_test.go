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
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/billing"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

const (
	jefeA = "00000000-0000-0000-0000-00000000000a"
	jefeB = "00000000-0000-0000-0000-00000000000b"
)

type fakeReceipts struct{}

func (fakeReceipts) GenerateReceiptPDF(_ context.Context, _ string, _ *entity.SaleDetail) ([]byte, error) {
	return []byte("%PDF-1.4 prueba"), nil
}

// newTestApp arma la API completa sobre el almacén en memoria.
func newTestApp(t *testing.T, authRequired bool) *fiber.App {
	t.Helper()
	s := memory.New()
	cat := s.Catalog()
	recorder := inventory.NewRecorder(cat.History, zerolog.Nop())
	deps := inventory.Deps{
		Tx:        s,
		Products:  cat.Products,
		Clients:   cat.Clients,
		Suppliers: cat.Suppliers,
		Returns:   cat.Returns,
		Recorder:  recorder,
	}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(cat.Jefes, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProductUC:    usecase.NewProductUseCase(cat.Products, recorder),
		LotUC:        usecase.NewLotUseCase(cat.Lots, recorder),
		ClientUC:     usecase.NewClientUseCase(cat.Clients, recorder),
		SupplierUC:   usecase.NewSupplierUseCase(cat.Suppliers, recorder),
		LedgerUC:     usecase.NewLedgerUseCase(cat),
		ReceiptUC:    billing.NewReceiptUseCase(cat.Sales, fakeReceipts{}, "Ferretería"),
		Sales:        inventory.NewSaleUseCase(deps),
		Entries:      inventory.NewEntryUseCase(deps),
		Exits:        inventory.NewExitUseCase(deps),
		Returns:      inventory.NewReturnUseCase(deps),
		Adjust:       inventory.NewAdjustUseCase(deps),
		Catalog:      inventory.NewStockCatalogUseCase(deps),
		Logger:       zerolog.Nop(),
		JWTSecret:    testJWTSecret,
		AuthRequired: authRequired,
	})
	return app
}

type result struct {
	status int
	header http.Header
	raw    []byte
}

func (r result) object(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.raw, &out), string(r.raw))
	return out
}

func (r result) array(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(r.raw, &out), string(r.raw))
	return out
}

func call(t *testing.T, app *fiber.App, method, path string, body any, authHeader string) result {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{status: resp.StatusCode, header: resp.Header, raw: raw}
}

// seedProduct registra un producto con stock inicial y devuelve su id.
func seedProduct(t *testing.T, app *fiber.App, jefe, nombre string, cantidad int) string {
	t.Helper()
	r := call(t, app, http.MethodPost, "/registrar/producto", map[string]any{
		"jefe_id":       jefe,
		"nombre":        nombre,
		"cantidad":      cantidad,
		"precio_compra": "5.00",
		"precio_venta":  "12.50",
	}, "")
	require.Equal(t, fiber.StatusCreated, r.status, string(r.raw))
	return r.object(t)["id"].(string)
}

func seedClient(t *testing.T, app *fiber.App, jefe string) string {
	t.Helper()
	r := call(t, app, http.MethodPost, "/clientes/registrar", map[string]any{"jefe_id": jefe, "nombre": "Ana"}, "")
	require.Equal(t, fiber.StatusCreated, r.status, string(r.raw))
	return r.object(t)["id"].(string)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, false)

	r := call(t, app, http.MethodGet, "/health", nil, "")

	assert.Equal(t, fiber.StatusOK, r.status)
	assert.Equal(t, "ok", r.object(t)["status"])
}

func TestVenta_DescuentaStockYRegistraMovimiento(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 10)
	cli := seedClient(t, app, jefeA)

	r := call(t, app, http.MethodPost, "/ventas/registrar", map[string]any{
		"cliente_id": cli,
		"jefe_id":    jefeA,
		"productos":  []map[string]any{{"id": prod, "cantidad": 4}},
	}, "")

	require.Equal(t, fiber.StatusOK, r.status, string(r.raw))
	body := r.object(t)
	assert.Equal(t, "Venta registrada", body["message"])
	assert.Equal(t, "50", body["total"])
	ventaID := body["venta_id"].(string)

	p := call(t, app, http.MethodGet, "/productos/"+prod+"?jefe_id="+jefeA, nil, "")
	require.Equal(t, fiber.StatusOK, p.status)
	assert.EqualValues(t, 6, p.object(t)["cantidad"])

	movs := call(t, app, http.MethodGet, "/movimientos?tipo=venta&jefe_id="+jefeA, nil, "").array(t)
	require.Len(t, movs, 1)
	assert.Equal(t, ventaID, movs[0]["referencia"])
	assert.EqualValues(t, 4, movs[0]["cantidad"])

	detalle := call(t, app, http.MethodGet, "/ventas/"+ventaID+"?jefe_id="+jefeA, nil, "")
	require.Equal(t, fiber.StatusOK, detalle.status)
	assert.Len(t, detalle.object(t)["lineas"], 1)
}

func TestVenta_StockInsuficiente_400(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 3)
	cli := seedClient(t, app, jefeA)

	r := call(t, app, http.MethodPost, "/ventas/registrar", map[string]any{
		"cliente_id": cli,
		"jefe_id":    jefeA,
		"productos":  []map[string]any{{"id": prod, "cantidad": 8}},
	}, "")

	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.Equal(t, "INSUFFICIENT_STOCK", r.object(t)["code"])
	p := call(t, app, http.MethodGet, "/productos/"+prod+"?jefe_id="+jefeA, nil, "")
	assert.EqualValues(t, 3, p.object(t)["cantidad"])
}

func TestVenta_SinJefe_400(t *testing.T) {
	app := newTestApp(t, false)

	r := call(t, app, http.MethodPost, "/ventas/registrar", map[string]any{
		"cliente_id": jefeB,
		"productos":  []map[string]any{{"id": jefeB, "cantidad": 1}},
	}, "")

	assert.Equal(t, fiber.StatusBadRequest, r.status)
	body := r.object(t)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, body["message"], body["error"])
}

func TestVenta_SinProductos_400(t *testing.T) {
	app := newTestApp(t, false)
	cli := seedClient(t, app, jefeA)

	r := call(t, app, http.MethodPost, "/ventas/registrar", map[string]any{
		"cliente_id": cli,
		"jefe_id":    jefeA,
		"productos":  []map[string]any{},
	}, "")

	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.Contains(t, r.object(t)["message"], "productos")
}

func TestCuerpoInvalido_400(t *testing.T) {
	app := newTestApp(t, false)

	r := call(t, app, http.MethodPost, "/salidas/registrar", "{no es json", "")

	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.Equal(t, "INVALID_BODY", r.object(t)["code"])
}

func TestTenant_TokenDeOtroJefe_403(t *testing.T) {
	app := newTestApp(t, false)

	r := call(t, app, http.MethodGet, "/productos?jefe_id="+jefeA, nil, bearerFor(t, jefeB))

	assert.Equal(t, fiber.StatusForbidden, r.status)
	assert.Equal(t, "FORBIDDEN", r.object(t)["code"])
}

func TestTenant_SinJefeUsaElDelToken(t *testing.T) {
	app := newTestApp(t, false)
	seedProduct(t, app, jefeA, "Martillo", 2)

	r := call(t, app, http.MethodGet, "/productos", nil, bearerFor(t, jefeA))

	require.Equal(t, fiber.StatusOK, r.status)
	assert.Len(t, r.array(t), 1)
}

func TestTenant_JefeNoUUID_400(t *testing.T) {
	app := newTestApp(t, false)

	r := call(t, app, http.MethodGet, "/productos?jefe_id=jefe-1", nil, "")

	assert.Equal(t, fiber.StatusBadRequest, r.status)
}

func TestAuthRequerido_SinToken_401(t *testing.T) {
	app := newTestApp(t, true)

	r := call(t, app, http.MethodGet, "/productos?jefe_id="+jefeA, nil, "")

	assert.Equal(t, fiber.StatusUnauthorized, r.status)
	assert.Equal(t, "MISSING_TOKEN", r.object(t)["code"])
}

func TestJefe_RegistroLoginYUsoDelToken(t *testing.T) {
	app := newTestApp(t, true)
	cred := map[string]any{"usuario": "don-pepe", "contrasena": "secreta123"}

	reg := call(t, app, http.MethodPost, "/jefe/registro", cred, "")
	require.Equal(t, fiber.StatusCreated, reg.status, string(reg.raw))
	jefe := reg.object(t)["id"].(string)

	dup := call(t, app, http.MethodPost, "/jefe/registro", cred, "")
	assert.Equal(t, fiber.StatusConflict, dup.status)

	bad := call(t, app, http.MethodPost, "/jefe/login", map[string]any{"usuario": "don-pepe", "contrasena": "otra"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, bad.status)

	login := call(t, app, http.MethodPost, "/jefe/login", cred, "")
	require.Equal(t, fiber.StatusOK, login.status)
	token := login.object(t)["token"].(string)

	r := call(t, app, http.MethodPost, "/clientes/registrar", map[string]any{"nombre": "Ana"}, "Bearer "+token)
	require.Equal(t, fiber.StatusCreated, r.status, string(r.raw))

	list := call(t, app, http.MethodGet, "/clientes?jefe_id="+jefe, nil, "Bearer "+token)
	require.Equal(t, fiber.StatusOK, list.status)
	assert.Len(t, list.array(t), 1)
}

func TestProducto_DeOtroJefe_404(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 1)

	r := call(t, app, http.MethodGet, "/productos/"+prod+"?jefe_id="+jefeB, nil, "")

	assert.Equal(t, fiber.StatusNotFound, r.status)
	assert.Equal(t, "NOT_FOUND", r.object(t)["code"])
}

func TestProducto_IDNoUUID_400(t *testing.T) {
	app := newTestApp(t, false)

	r := call(t, app, http.MethodGet, "/productos/abc?jefe_id="+jefeA, nil, "")

	assert.Equal(t, fiber.StatusBadRequest, r.status)
}

func TestProducto_EditarRechazaCantidad(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 5)

	r := call(t, app, http.MethodPut, "/productos/"+prod, map[string]any{"jefe_id": jefeA, "cantidad": 99}, "")

	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.Equal(t, "INVALID_BODY", r.object(t)["code"])
}

func TestProducto_EditarCamposPermitidos(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 5)

	r := call(t, app, http.MethodPut, "/productos/"+prod, map[string]any{"jefe_id": jefeA, "marca": "Truper", "precio_venta": "15.00"}, "")

	require.Equal(t, fiber.StatusOK, r.status, string(r.raw))
	body := r.object(t)
	assert.Equal(t, "Truper", body["marca"])
	assert.Equal(t, "15", body["precio_venta"])
	assert.EqualValues(t, 5, body["cantidad"])
}

func TestProducto_ActualizarCantidadYEliminar(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 5)

	r := call(t, app, http.MethodPut, "/productos/actualizar-cantidad", map[string]any{
		"jefe_id": jefeA, "producto_id": prod, "cantidad": 8,
	}, "")
	require.Equal(t, fiber.StatusOK, r.status, string(r.raw))

	lots := call(t, app, http.MethodGet, "/inventario/"+jefeA, nil, "").array(t)
	total := 0.0
	for _, l := range lots {
		total += l["cantidad"].(float64)
	}
	assert.Equal(t, 8.0, total)

	del := call(t, app, http.MethodDelete, "/productos/"+prod+"?jefe_id="+jefeA, nil, "")
	require.Equal(t, fiber.StatusOK, del.status)
	assert.Equal(t, fiber.StatusNotFound, call(t, app, http.MethodGet, "/productos/"+prod+"?jefe_id="+jefeA, nil, "").status)
	assert.Empty(t, call(t, app, http.MethodGet, "/inventario/"+jefeA, nil, "").array(t))
}

func TestEntradaYSalida(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 2)
	prov := call(t, app, http.MethodPost, "/proveedores/registrar", map[string]any{"jefe_id": jefeA, "nombre": "Distribuidora"}, "")
	require.Equal(t, fiber.StatusCreated, prov.status, string(prov.raw))
	provID := prov.object(t)["id"].(string)

	ent := call(t, app, http.MethodPost, "/entradas/registrar", map[string]any{
		"jefe_id": jefeA, "producto_id": prod, "proveedor_id": provID, "cantidad": 5, "precio_compra": "4.50",
	}, "")
	require.Equal(t, fiber.StatusOK, ent.status, string(ent.raw))
	entradaID := ent.object(t)["entrada_id"].(string)

	detalle := call(t, app, http.MethodGet, "/entradas/"+entradaID+"?jefe_id="+jefeA, nil, "")
	require.Equal(t, fiber.StatusOK, detalle.status)
	assert.EqualValues(t, 5, detalle.object(t)["cantidad"])

	sal := call(t, app, http.MethodPost, "/salidas/registrar", map[string]any{
		"jefe_id": jefeA, "producto_id": prod, "cantidad": 6, "observacion": "merma",
	}, "")
	require.Equal(t, fiber.StatusCreated, sal.status, string(sal.raw))
	salidaID := sal.object(t)["salida_id"].(string)
	assert.Equal(t, fiber.StatusOK, call(t, app, http.MethodGet, "/salidas/"+salidaID+"?jefe_id="+jefeA, nil, "").status)

	p := call(t, app, http.MethodGet, "/productos/"+prod+"?jefe_id="+jefeA, nil, "")
	assert.EqualValues(t, 1, p.object(t)["cantidad"])

	sinStock := call(t, app, http.MethodPost, "/salidas/registrar", map[string]any{
		"jefe_id": jefeA, "producto_id": prod, "cantidad": 2,
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, sinStock.status)

	enorme := call(t, app, http.MethodPost, "/salidas/registrar", map[string]any{
		"jefe_id": jefeA, "producto_id": prod, "cantidad": 3000000000,
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, enorme.status)
	assert.Equal(t, "VALIDATION", enorme.object(t)["code"])
}

func TestEntradaConProducto_NoDuplicaCantidad(t *testing.T) {
	app := newTestApp(t, false)
	body := map[string]any{
		"jefe_id": jefeA, "nombre": "Taladro", "precio_venta": "90", "cantidad": 3, "precio_compra": "60",
	}

	r := call(t, app, http.MethodPost, "/registrar/entrada", body, "")
	require.Equal(t, fiber.StatusCreated, r.status, string(r.raw))
	first := r.object(t)
	assert.Equal(t, true, first["nuevo"])

	body["nombre"] = "  TALADRO "
	r2 := call(t, app, http.MethodPost, "/registrar/entrada", body, "")
	require.Equal(t, fiber.StatusCreated, r2.status, string(r2.raw))
	second := r2.object(t)
	assert.Equal(t, false, second["nuevo"])
	assert.Equal(t, first["producto_id"], second["producto_id"])

	p := call(t, app, http.MethodGet, "/productos/"+first["producto_id"].(string)+"?jefe_id="+jefeA, nil, "")
	assert.EqualValues(t, 6, p.object(t)["cantidad"])
}

func TestDevolucion_AplicarUnaSolaVez(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 10)

	r := call(t, app, http.MethodPost, "/devoluciones", map[string]any{
		"jefe_id": jefeA, "tipo": "venta", "producto_id": prod, "cantidad": 4, "motivo": "defecto",
	}, "")
	require.Equal(t, fiber.StatusCreated, r.status, string(r.raw))
	created := r.object(t)
	assert.Equal(t, entity.DevolucionPendiente, created["estado"])
	id := created["devolucion_id"].(string)

	settle := call(t, app, http.MethodPut, "/devoluciones/"+id+"/actualizar-stock?jefe_id="+jefeA, nil, "")
	require.Equal(t, fiber.StatusOK, settle.status, string(settle.raw))
	assert.EqualValues(t, 4, settle.object(t)["cantidad_modificada"])

	again := call(t, app, http.MethodPut, "/devoluciones/"+id+"/actualizar-stock?jefe_id="+jefeA, nil, "")
	assert.Equal(t, fiber.StatusConflict, again.status)
	assert.Equal(t, "RETURN_ALREADY_SETTLED", again.object(t)["code"])

	p := call(t, app, http.MethodGet, "/productos/"+prod+"?jefe_id="+jefeA, nil, "")
	assert.EqualValues(t, 14, p.object(t)["cantidad"])

	list := call(t, app, http.MethodGet, "/devoluciones?estado=aplicada&jefe_id="+jefeA, nil, "").array(t)
	require.Len(t, list, 1)
	assert.Equal(t, entity.DevolucionAplicada, list[0]["estado"])
}

func TestDevolucion_TipoInvalido_400(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 1)

	r := call(t, app, http.MethodPost, "/devoluciones", map[string]any{
		"jefe_id": jefeA, "tipo": "cambio", "producto_id": prod, "cantidad": 1,
	}, "")

	assert.Equal(t, fiber.StatusBadRequest, r.status)
}

func TestLote_RegistrarYRetirarDeLaVenta(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 0)

	r := call(t, app, http.MethodPost, "/registrar/inventario", map[string]any{
		"jefe_id": jefeA, "producto_id": prod, "cantidad": 3, "almacen": "Bodega",
	}, "")
	require.Equal(t, fiber.StatusCreated, r.status, string(r.raw))
	loteID := r.object(t)["id"].(string)

	venta := call(t, app, http.MethodGet, "/productos/venta?jefe_id="+jefeA, nil, "").array(t)
	assert.Len(t, venta, 1)

	off := call(t, app, http.MethodPut, "/inventario/"+loteID+"/venta", map[string]any{"jefe_id": jefeA, "en_venta": false}, "")
	require.Equal(t, fiber.StatusOK, off.status, string(off.raw))

	venta = call(t, app, http.MethodGet, "/productos/venta?jefe_id="+jefeA, nil, "").array(t)
	assert.Empty(t, venta)
}

func TestComprobante_DevuelvePDF(t *testing.T) {
	app := newTestApp(t, false)
	prod := seedProduct(t, app, jefeA, "Martillo", 2)
	cli := seedClient(t, app, jefeA)
	v := call(t, app, http.MethodPost, "/ventas/registrar", map[string]any{
		"cliente_id": cli, "jefe_id": jefeA, "productos": []map[string]any{{"id": prod, "cantidad": 1, "precio": "10.00"}},
	}, "")
	require.Equal(t, fiber.StatusOK, v.status, string(v.raw))
	ventaID := v.object(t)["venta_id"].(string)

	r := call(t, app, http.MethodGet, "/ventas/"+ventaID+"/comprobante?jefe_id="+jefeA, nil, "")

	require.Equal(t, fiber.StatusOK, r.status)
	assert.Equal(t, "application/pdf", r.header.Get("Content-Type"))
	assert.Contains(t, r.header.Get("Content-Disposition"), "venta_")
	assert.True(t, bytes.HasPrefix(r.raw, []byte("%PDF")))
}

func TestHistorial_RegistraAcciones(t *testing.T) {
	app := newTestApp(t, false)
	seedProduct(t, app, jefeA, "Martillo", 1)
	seedClient(t, app, jefeA)

	r := call(t, app, http.MethodGet, "/historial?jefe_id="+jefeA, nil, "")

	require.Equal(t, fiber.StatusOK, r.status)
	assert.GreaterOrEqual(t, len(r.array(t)), 2)
}

func TestCliente_Editar(t *testing.T) {
	app := newTestApp(t, false)
	cli := seedClient(t, app, jefeA)

	r := call(t, app, http.MethodPut, "/clientes/"+cli, map[string]any{"jefe_id": jefeA, "nombre": "Ana María", "email": "ana@example.com"}, "")

	require.Equal(t, fiber.StatusOK, r.status, string(r.raw))
	assert.Equal(t, "Ana María", r.object(t)["nombre"])

	other := call(t, app, http.MethodGet, "/clientes/"+cli+"?jefe_id="+jefeB, nil, "")
	assert.Equal(t, fiber.StatusNotFound, other.status)
}
