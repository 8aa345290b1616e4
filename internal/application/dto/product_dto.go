package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body de POST /registrar/producto. Cantidad > 0 crea también el lote inicial.
type CreateProductRequest struct {
	JefeID       string          `json:"jefe_id" validate:"required"`
	Nombre       string          `json:"nombre" validate:"required,max=255"`
	Descripcion  string          `json:"descripcion"`
	Modelo       string          `json:"modelo" validate:"max=100"`
	Marca        string          `json:"marca" validate:"max=100"`
	Ubicacion    string          `json:"ubicacion" validate:"max=255"`
	Cantidad     int             `json:"cantidad" validate:"gte=0,max=2147483647"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"money"`
	PrecioVenta  decimal.Decimal `json:"precio_venta" validate:"money"`
	Almacen      string          `json:"almacen" validate:"max=100"`
	Lote         string          `json:"lote" validate:"max=100"`
	FechaIngreso *time.Time      `json:"fecha_ingreso"`
}

// UpdateProductRequest campos modificables de PUT /productos/:id. Se decodifica rechazando claves
// desconocidas: cantidad no está aquí y se cambia con /productos/actualizar-cantidad.
type UpdateProductRequest struct {
	JefeID       string           `json:"jefe_id"`
	Nombre       *string          `json:"nombre" validate:"omitempty,min=1,max=255"`
	Descripcion  *string          `json:"descripcion"`
	Modelo       *string          `json:"modelo" validate:"omitempty,max=100"`
	Marca        *string          `json:"marca" validate:"omitempty,max=100"`
	Ubicacion    *string          `json:"ubicacion" validate:"omitempty,max=255"`
	PrecioCompra *decimal.Decimal `json:"precio_compra" validate:"omitempty,money"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta" validate:"omitempty,money"`
}

// Empty indica que no se envió ningún campo modificable.
func (r UpdateProductRequest) Empty() bool {
	return r.Nombre == nil && r.Descripcion == nil && r.Modelo == nil && r.Marca == nil &&
		r.Ubicacion == nil && r.PrecioCompra == nil && r.PrecioVenta == nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	JefeID       string          `json:"jefe_id"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion"`
	Modelo       string          `json:"modelo"`
	Marca        string          `json:"marca"`
	Cantidad     int             `json:"cantidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Ubicacion    string          `json:"ubicacion"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AdjustQuantityRequest body de PUT /productos/actualizar-cantidad.
type AdjustQuantityRequest struct {
	JefeID     string `json:"jefe_id" validate:"required"`
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   *int   `json:"cantidad" validate:"required,gte=0,max=2147483647"`
	LoteID     string `json:"lote_id" validate:"omitempty,uuid"`
	Almacen    string `json:"almacen" validate:"max=100"`
	Lote       string `json:"lote" validate:"max=100"`
}

// CreateLotRequest body de POST /registrar/inventario.
type CreateLotRequest struct {
	JefeID       string     `json:"jefe_id" validate:"required"`
	ProductoID   string     `json:"producto_id" validate:"required,uuid"`
	Almacen      string     `json:"almacen" validate:"max=100"`
	Lote         string     `json:"lote" validate:"max=100"`
	Cantidad     int        `json:"cantidad" validate:"gt=0,max=2147483647"`
	EnVenta      *bool      `json:"en_venta"`
	FechaIngreso *time.Time `json:"fecha_ingreso"`
}

// SetForSaleRequest body de PUT /inventario/:id/venta.
type SetForSaleRequest struct {
	JefeID  string `json:"jefe_id" validate:"required"`
	EnVenta *bool  `json:"en_venta" validate:"required"`
}

// LotResponse salida de un lote.
type LotResponse struct {
	ID           string    `json:"id"`
	ProductoID   string    `json:"producto_id"`
	Producto     string    `json:"producto,omitempty"`
	Almacen      string    `json:"almacen"`
	Lote         string    `json:"lote"`
	Cantidad     int       `json:"cantidad"`
	EnVenta      bool      `json:"en_venta"`
	FechaIngreso time.Time `json:"fecha_ingreso"`
}
