package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// MovementInput datos de un movimiento de la bitácora.
type MovementInput struct {
	JefeID      string
	Tipo        string
	ProductoID  string
	Cantidad    int
	Observacion string
	Referencia  string
}

func (in MovementInput) validate() error {
	switch {
	case in.JefeID == "":
		return domain.Invalid("jefe_id", "requerido")
	case !entity.ValidMovementType(in.Tipo):
		return domain.Invalid("tipo", "debe ser entrada, venta o salida")
	case in.ProductoID == "":
		return domain.Invalid("producto_id", "requerido")
	case in.Cantidad <= 0:
		return domain.Invalid("cantidad", "debe ser mayor que cero")
	}
	return nil
}

// Recorder registra movimientos de stock y entradas del historial.
type Recorder struct {
	history repository.HistoryRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewRecorder construye el registrador. history se usa fuera de transacción; los movimientos
// van siempre por el repositorio de la transacción en curso.
func NewRecorder(history repository.HistoryRepository, log zerolog.Logger) *Recorder {
	return &Recorder{
		history: history,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Record inserta el movimiento con el repositorio dado (normalmente el de la transacción en curso).
// Un error aquí revierte la operación que lo llamó.
func (r *Recorder) Record(ctx context.Context, repo repository.MovementRepository, in MovementInput) error {
	if err := in.validate(); err != nil {
		r.log.Warn().Err(err).
			Str("jefe_id", in.JefeID).
			Str("producto_id", in.ProductoID).
			Str("tipo", in.Tipo).
			Msg("movimiento rechazado")
		return err
	}
	m := &entity.Movement{
		ID:          uuid.New().String(),
		Tipo:        in.Tipo,
		ProductoID:  in.ProductoID,
		Cantidad:    in.Cantidad,
		JefeID:      in.JefeID,
		Observacion: in.Observacion,
		Referencia:  in.Referencia,
		Fecha:       r.now(),
	}
	if err := repo.Create(ctx, m); err != nil {
		return fmt.Errorf("registrar movimiento: %w", err)
	}
	return nil
}

// History agrega una entrada al historial del jefe. Nunca falla la petición.
func (r *Recorder) History(ctx context.Context, jefeID, accion, descripcion string) {
	h := &entity.History{
		ID:          uuid.New().String(),
		JefeID:      jefeID,
		Accion:      accion,
		Descripcion: descripcion,
		Fecha:       r.now(),
	}
	if err := r.history.Create(ctx, h); err != nil {
		r.log.Error().Err(err).Str("jefe_id", jefeID).Str("accion", accion).Msg("no se pudo registrar el historial")
	}
}
