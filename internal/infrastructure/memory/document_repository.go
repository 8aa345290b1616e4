package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.EntryRepository    = (*EntryRepo)(nil)
	_ repository.ExitRepository     = (*ExitRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.ReturnRepository   = (*ReturnRepo)(nil)
)

func (st *state) requireProduct(id string) error {
	if _, ok := st.products[id]; !ok {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// MovementRepo bitácora en memoria.
type MovementRepo struct {
	c conn
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.c.write(func(st *state) error {
		if err := st.requireProduct(m.ProductoID); err != nil {
			return err
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]entity.MovementView, error) {
	var out []entity.MovementView
	r.c.read(func(st *state) {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.JefeID != f.JefeID ||
				(f.Tipo != "" && m.Tipo != f.Tipo) ||
				(f.ProductoID != "" && m.ProductoID != f.ProductoID) {
				continue
			}
			out = append(out, entity.MovementView{Movement: m, Producto: st.products[m.ProductoID].Nombre})
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// EntryRepo entradas en memoria.
type EntryRepo struct {
	c conn
}

func (r *EntryRepo) Create(_ context.Context, e *entity.Entry) error {
	return r.c.write(func(st *state) error {
		if err := st.requireProduct(e.ProductoID); err != nil {
			return err
		}
		st.entries[e.ID] = *e
		return nil
	})
}

func (r *EntryRepo) GetByID(_ context.Context, jefeID, id string) (*entity.Entry, error) {
	var out *entity.Entry
	r.c.read(func(st *state) {
		if e, ok := st.entries[id]; ok && e.JefeID == jefeID {
			out = &e
		}
	})
	return out, nil
}

// ExitRepo salidas en memoria.
type ExitRepo struct {
	c conn
}

func (r *ExitRepo) Create(_ context.Context, e *entity.Exit) error {
	return r.c.write(func(st *state) error {
		if err := st.requireProduct(e.ProductoID); err != nil {
			return err
		}
		st.exits[e.ID] = *e
		return nil
	})
}

func (r *ExitRepo) GetByID(_ context.Context, jefeID, id string) (*entity.Exit, error) {
	var out *entity.Exit
	r.c.read(func(st *state) {
		if e, ok := st.exits[id]; ok && e.JefeID == jefeID {
			out = &e
		}
	})
	return out, nil
}

// SaleRepo ventas en memoria.
type SaleRepo struct {
	c conn
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.clients[s.ClienteID]; !ok {
			return fmt.Errorf("cliente %s: %w", s.ClienteID, domain.ErrNotFound)
		}
		st.sales[s.ID] = *s
		return nil
	})
}

func (r *SaleRepo) CreateLine(_ context.Context, l *entity.SaleLine) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.sales[l.VentaID]; !ok {
			return fmt.Errorf("venta %s: %w", l.VentaID, domain.ErrNotFound)
		}
		if err := st.requireProduct(l.ProductoID); err != nil {
			return err
		}
		st.lines = append(st.lines, *l)
		return nil
	})
}

func (r *SaleRepo) GetDetail(_ context.Context, jefeID, id string) (*entity.SaleDetail, error) {
	var out *entity.SaleDetail
	r.c.read(func(st *state) {
		s, ok := st.sales[id]
		if !ok || s.JefeID != jefeID {
			return
		}
		out = &entity.SaleDetail{Sale: s, Cliente: st.clients[s.ClienteID].Nombre}
		for _, l := range st.lines {
			if l.VentaID == id {
				out.Lineas = append(out.Lineas, entity.SaleLineView{SaleLine: l, Producto: st.products[l.ProductoID].Nombre})
			}
		}
	})
	return out, nil
}

// ReturnRepo devoluciones en memoria.
type ReturnRepo struct {
	c conn
}

func (r *ReturnRepo) Create(_ context.Context, ret *entity.Return) error {
	return r.c.write(func(st *state) error {
		if err := st.requireProduct(ret.ProductoID); err != nil {
			return err
		}
		st.returns[ret.ID] = *ret
		return nil
	})
}

func (r *ReturnRepo) GetByID(_ context.Context, jefeID, id string) (*entity.Return, error) {
	var out *entity.Return
	r.c.read(func(st *state) {
		if ret, ok := st.returns[id]; ok && ret.JefeID == jefeID {
			out = &ret
		}
	})
	return out, nil
}

func (r *ReturnRepo) GetForUpdate(ctx context.Context, jefeID, id string) (*entity.Return, error) {
	return r.GetByID(ctx, jefeID, id)
}

func (r *ReturnRepo) MarkSettled(_ context.Context, id, loteID string, at time.Time) (bool, error) {
	settled := false
	err := r.c.write(func(st *state) error {
		ret, ok := st.returns[id]
		if !ok || ret.Estado != entity.DevolucionPendiente {
			return nil
		}
		ret.Estado = entity.DevolucionAplicada
		if loteID != "" {
			ret.LoteID = loteID
		}
		ret.AplicadaEn = &at
		st.returns[id] = ret
		settled = true
		return nil
	})
	return settled, err
}

func (r *ReturnRepo) ListByJefe(_ context.Context, jefeID, estado string) ([]*entity.Return, error) {
	var out []*entity.Return
	r.c.read(func(st *state) {
		for _, ret := range st.returns {
			if ret.JefeID == jefeID && (estado == "" || ret.Estado == estado) {
				out = append(out, &ret)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Fecha.Equal(out[j].Fecha) {
			return out[i].Fecha.After(out[j].Fecha)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
