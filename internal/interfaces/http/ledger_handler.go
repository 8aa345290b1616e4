package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/billing"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// LedgerHandler consultas de documentos, bitácora e historial, y el comprobante PDF de venta.
type LedgerHandler struct {
	uc       *usecase.LedgerUseCase
	receipts *billing.ReceiptUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *usecase.LedgerUseCase, receipts *billing.ReceiptUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, receipts: receipts}
}

// tenantAndID resuelve el jefe por query o token y valida el :id de la ruta.
func tenantAndID(c *fiber.Ctx) (string, string, error) {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return "", "", err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return "", "", err
	}
	return jefeID, id, nil
}

// Sale godoc
// @Summary      Consultar venta
// @Tags         ventas
// @Produce      json
// @Param        id       path   string  true   "ID de la venta"
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {object}  dto.SaleDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ventas/{id} [get]
func (h *LedgerHandler) Sale(c *fiber.Ctx) error {
	jefeID, id, err := tenantAndID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Sale(c.UserContext(), jefeID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de una venta
// @Tags         ventas
// @Produce      application/pdf
// @Param        id       path   string  true   "ID de la venta"
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ventas/{id}/comprobante [get]
func (h *LedgerHandler) Receipt(c *fiber.Ctx) error {
	jefeID, id, err := tenantAndID(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.receipts.DownloadReceipt(c.UserContext(), jefeID, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}

// Entry godoc
// @Summary      Consultar entrada
// @Tags         entradas
// @Produce      json
// @Param        id       path   string  true   "ID de la entrada"
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {object}  dto.EntryDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /entradas/{id} [get]
func (h *LedgerHandler) Entry(c *fiber.Ctx) error {
	jefeID, id, err := tenantAndID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Entry(c.UserContext(), jefeID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Exit godoc
// @Summary      Consultar salida
// @Tags         salidas
// @Produce      json
// @Param        id       path   string  true   "ID de la salida"
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {object}  dto.ExitDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /salidas/{id} [get]
func (h *LedgerHandler) Exit(c *fiber.Ctx) error {
	jefeID, id, err := tenantAndID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Exit(c.UserContext(), jefeID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Returns godoc
// @Summary      Listar devoluciones
// @Tags         devoluciones
// @Produce      json
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Param        estado   query  string  false  "pendiente | aplicada"
// @Success      200  {array}  dto.ReturnResponse
// @Router       /devoluciones [get]
func (h *LedgerHandler) Returns(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Returns(c.UserContext(), jefeID, c.Query("estado"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Bitácora de movimientos
// @Tags         movimientos
// @Produce      json
// @Param        jefe_id      query  string  false  "Jefe (opcional con token)"
// @Param        tipo         query  string  false  "entrada | venta | salida"
// @Param        producto_id  query  string  false  "Filtra por producto"
// @Param        limit        query  int     false  "Máximo de filas (100 por defecto)"
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /movimientos [get]
func (h *LedgerHandler) Movements(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return respondError(c, err)
	}
	productoID := c.Query("producto_id")
	if productoID != "" {
		if _, err := uuid.Parse(productoID); err != nil {
			return respondError(c, domain.Invalid("producto_id", "debe ser un UUID"))
		}
	}
	out, err := h.uc.Movements(c.UserContext(), repository.MovementFilter{
		JefeID:     jefeID,
		Tipo:       c.Query("tipo"),
		ProductoID: productoID,
		Limit:      c.QueryInt("limit"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de acciones del jefe
// @Tags         historial
// @Produce      json
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Param        limit    query  int     false  "Máximo de filas (100 por defecto)"
// @Success      200  {array}  dto.HistoryResponse
// @Router       /historial [get]
func (h *LedgerHandler) History(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.History(c.UserContext(), jefeID, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
