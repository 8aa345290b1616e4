package billing

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ReceiptPDFGenerator dibuja el comprobante de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, store string, sale *entity.SaleDetail) ([]byte, error)
}
