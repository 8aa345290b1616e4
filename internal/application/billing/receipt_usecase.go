package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta del jefe.
type ReceiptUseCase struct {
	sales     repository.SaleRepository
	generator ReceiptPDFGenerator
	store     string
}

// NewReceiptUseCase construye el caso de uso. store es el nombre impreso en la cabecera.
func NewReceiptUseCase(sales repository.SaleRepository, generator ReceiptPDFGenerator, store string) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, generator: generator, store: store}
}

// DownloadReceipt devuelve los bytes del PDF y el nombre de archivo sugerido.
// domain.ErrNotFound si la venta no existe o es de otro jefe.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, jefeID, ventaID string) ([]byte, string, error) {
	sale, err := uc.sales.GetDetail(ctx, jefeID, ventaID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", fmt.Errorf("venta %s: %w", ventaID, domain.ErrNotFound)
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, uc.store, sale)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("venta_%s.pdf", shortID(sale.ID)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
