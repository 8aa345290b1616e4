package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta. Sin precio se usa el precio de venta del producto.
type SaleLineRequest struct {
	ID       string           `json:"id" validate:"required,uuid"`
	Cantidad int              `json:"cantidad" validate:"gt=0,max=2147483647"`
	Precio   *decimal.Decimal `json:"precio" validate:"omitempty,money"`
}

// SaleRequest body de POST /ventas/registrar.
type SaleRequest struct {
	ClienteID string            `json:"cliente_id" validate:"required,uuid"`
	JefeID    string            `json:"jefe_id" validate:"required"`
	Productos []SaleLineRequest `json:"productos" validate:"required,min=1,dive"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	Message string          `json:"message"`
	VentaID string          `json:"venta_id"`
	Total   decimal.Decimal `json:"total"`
}

// SaleLineResponse línea de una venta consultada.
type SaleLineResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// SaleDetailResponse venta con cliente y líneas.
type SaleDetailResponse struct {
	ID        string             `json:"id"`
	ClienteID string             `json:"cliente_id"`
	Cliente   string             `json:"cliente"`
	Total     decimal.Decimal    `json:"total"`
	Fecha     time.Time          `json:"fecha"`
	Lineas    []SaleLineResponse `json:"lineas"`
}

// EntryRequest body de POST /entradas/registrar (producto existente).
type EntryRequest struct {
	JefeID       string           `json:"jefe_id" validate:"required"`
	ProductoID   string           `json:"producto_id" validate:"required,uuid"`
	ProveedorID  string           `json:"proveedor_id" validate:"required,uuid"`
	Cantidad     int              `json:"cantidad" validate:"gt=0,max=2147483647"`
	PrecioCompra *decimal.Decimal `json:"precio_compra" validate:"required,money"`
	LoteID       string           `json:"lote_id" validate:"omitempty,uuid"`
	Almacen      string           `json:"almacen" validate:"max=100"`
	Lote         string           `json:"lote" validate:"max=100"`
}

// NewProductEntryRequest body de POST /registrar/entrada: crea el producto si no existe por nombre.
type NewProductEntryRequest struct {
	JefeID       string           `json:"jefe_id" validate:"required"`
	Nombre       string           `json:"nombre" validate:"required,max=255"`
	Descripcion  string           `json:"descripcion"`
	Modelo       string           `json:"modelo" validate:"max=100"`
	Marca        string           `json:"marca" validate:"max=100"`
	Ubicacion    string           `json:"ubicacion" validate:"max=255"`
	PrecioVenta  decimal.Decimal  `json:"precio_venta" validate:"money"`
	Cantidad     int              `json:"cantidad" validate:"gt=0,max=2147483647"`
	PrecioCompra *decimal.Decimal `json:"precio_compra" validate:"required,money"`
	ProveedorID  string           `json:"proveedor_id" validate:"omitempty,uuid"`
	Fecha        *time.Time       `json:"fecha"`
	Almacen      string           `json:"almacen" validate:"max=100"`
	Lote         string           `json:"lote" validate:"max=100"`
}

// EntryResponse entrada registrada.
type EntryResponse struct {
	Message    string `json:"message"`
	EntradaID  string `json:"entrada_id"`
	ProductoID string `json:"producto_id"`
	LoteID     string `json:"lote_id"`
	Nuevo      bool   `json:"nuevo"`
}

// EntryDetailResponse entrada consultada.
type EntryDetailResponse struct {
	ID           string          `json:"id"`
	ProductoID   string          `json:"producto_id"`
	LoteID       string          `json:"lote_id"`
	Cantidad     int             `json:"cantidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	ProveedorID  string          `json:"proveedor_id,omitempty"`
	Fecha        time.Time       `json:"fecha"`
}

// ExitRequest body de POST /salidas/registrar.
type ExitRequest struct {
	JefeID      string `json:"jefe_id" validate:"required"`
	ProductoID  string `json:"producto_id" validate:"required,uuid"`
	Cantidad    int    `json:"cantidad" validate:"gt=0,max=2147483647"`
	Observacion string `json:"observacion"`
}

// ExitResponse salida registrada.
type ExitResponse struct {
	Message  string `json:"message"`
	SalidaID string `json:"salida_id"`
}

// ExitDetailResponse salida consultada.
type ExitDetailResponse struct {
	ID          string    `json:"id"`
	ProductoID  string    `json:"producto_id"`
	Cantidad    int       `json:"cantidad"`
	Observacion string    `json:"observacion"`
	Fecha       time.Time `json:"fecha"`
}

// ReturnRequest body de POST /devoluciones.
type ReturnRequest struct {
	JefeID     string `json:"jefe_id" validate:"required"`
	Tipo       string `json:"tipo" validate:"required,oneof=venta compra"`
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"gt=0,max=2147483647"`
	Motivo     string `json:"motivo"`
}

// ReturnCreatedResponse devolución registrada como pendiente.
type ReturnCreatedResponse struct {
	Message      string `json:"message"`
	DevolucionID string `json:"devolucion_id"`
	Estado       string `json:"estado"`
}

// SettleReturnRequest destino opcional del stock al aplicar una devolución de venta (query o body).
type SettleReturnRequest struct {
	JefeID  string `json:"jefe_id" query:"jefe_id"`
	LoteID  string `json:"lote_id" query:"lote_id" validate:"omitempty,uuid"`
	Almacen string `json:"almacen" query:"almacen" validate:"max=100"`
	Lote    string `json:"lote" query:"lote" validate:"max=100"`
}

// SettleReturnResponse efecto de aplicar la devolución. CantidadModificada lleva signo.
type SettleReturnResponse struct {
	ProductoID         string `json:"producto_id"`
	CantidadModificada int    `json:"cantidad_modificada"`
	LoteID             string `json:"lote_id,omitempty"`
}

// ReturnResponse devolución consultada.
type ReturnResponse struct {
	ID         string     `json:"id"`
	Tipo       string     `json:"tipo"`
	ProductoID string     `json:"producto_id"`
	Cantidad   int        `json:"cantidad"`
	Motivo     string     `json:"motivo"`
	Estado     string     `json:"estado"`
	LoteID     string     `json:"lote_id,omitempty"`
	Fecha      time.Time  `json:"fecha"`
	AplicadaEn *time.Time `json:"aplicada_en,omitempty"`
}

// MovementResponse movimiento de la bitácora.
type MovementResponse struct {
	ID          string    `json:"id"`
	Tipo        string    `json:"tipo"`
	ProductoID  string    `json:"producto_id"`
	Producto    string    `json:"producto"`
	Cantidad    int       `json:"cantidad"`
	Observacion string    `json:"observacion"`
	Referencia  string    `json:"referencia"`
	Fecha       time.Time `json:"fecha"`
}

// HistoryResponse entrada del historial.
type HistoryResponse struct {
	ID          string    `json:"id"`
	Accion      string    `json:"accion"`
	Descripcion string    `json:"descripcion"`
	Fecha       time.Time `json:"fecha"`
}
