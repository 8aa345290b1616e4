package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.LotRepository     = (*LotRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct {
	c conn
}

func (st *state) productByClave(jefeID, clave string) (entity.Product, bool) {
	for _, p := range st.products {
		if p.JefeID == jefeID && p.NombreClave == clave {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (st *state) product(jefeID, id string) *entity.Product {
	p, ok := st.products[id]
	if !ok || p.JefeID != jefeID {
		return nil
	}
	return &p
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.c.write(func(st *state) error {
		if _, dup := st.productByClave(product.JefeID, product.NombreClave); dup {
			return fmt.Errorf("producto %q: %w", product.Nombre, domain.ErrDuplicate)
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) CreateIfAbsent(_ context.Context, product *entity.Product) (bool, error) {
	created := false
	err := r.c.write(func(st *state) error {
		if _, dup := st.productByClave(product.JefeID, product.NombreClave); dup {
			return nil
		}
		st.products[product.ID] = *product
		created = true
		return nil
	})
	return created, err
}

func (r *ProductRepo) GetByID(_ context.Context, jefeID, id string) (*entity.Product, error) {
	var p *entity.Product
	r.c.read(func(st *state) { p = st.product(jefeID, id) })
	return p, nil
}

// GetForUpdate en memoria equivale a GetByID: Run ya serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, jefeID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, jefeID, id)
}

func (r *ProductRepo) GetByNombreClaveForUpdate(_ context.Context, jefeID, nombreClave string) (*entity.Product, error) {
	var out *entity.Product
	r.c.read(func(st *state) {
		if p, ok := st.productByClave(jefeID, nombreClave); ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) list(jefeID string, keep func(st *state, p entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	r.c.read(func(st *state) {
		for _, p := range st.products {
			if p.JefeID == jefeID && keep(st, p) {
				out = append(out, &p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Nombre != out[j].Nombre {
			return out[i].Nombre < out[j].Nombre
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *ProductRepo) ListByJefe(_ context.Context, jefeID string) ([]*entity.Product, error) {
	return r.list(jefeID, func(*state, entity.Product) bool { return true }), nil
}

func (r *ProductRepo) ListForSale(_ context.Context, jefeID string) ([]*entity.Product, error) {
	return r.list(jefeID, func(st *state, p entity.Product) bool {
		for _, l := range st.lots {
			if l.ProductoID == p.ID && l.EnVenta && l.Cantidad > 0 {
				return true
			}
		}
		return false
	}), nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.c.write(func(st *state) error {
		cur := st.product(product.JefeID, product.ID)
		if cur == nil {
			return fmt.Errorf("producto %s: %w", product.ID, domain.ErrNotFound)
		}
		if other, dup := st.productByClave(product.JefeID, product.NombreClave); dup && other.ID != product.ID {
			return fmt.Errorf("producto %q: %w", product.Nombre, domain.ErrDuplicate)
		}
		cur.Nombre = product.Nombre
		cur.NombreClave = product.NombreClave
		cur.Descripcion = product.Descripcion
		cur.Modelo = product.Modelo
		cur.Marca = product.Marca
		cur.PrecioCompra = product.PrecioCompra
		cur.PrecioVenta = product.PrecioVenta
		cur.Ubicacion = product.Ubicacion
		cur.UpdatedAt = time.Now().UTC()
		st.products[cur.ID] = *cur
		return nil
	})
}

func (r *ProductRepo) modify(id string, fn func(p *entity.Product) bool) (bool, error) {
	applied := false
	err := r.c.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		if applied = fn(&p); applied {
			p.UpdatedAt = time.Now().UTC()
			st.products[id] = p
		}
		return nil
	})
	return applied, err
}

func (r *ProductRepo) IncrementQuantity(_ context.Context, id string, n int) error {
	applied, err := r.modify(id, func(p *entity.Product) bool {
		if !domain.FitsQuantity(p.Cantidad, n) {
			return false
		}
		p.Cantidad += n
		return true
	})
	if err == nil && !applied {
		return domain.QuantityOverflow()
	}
	return err
}

func (r *ProductRepo) DecrementQuantity(_ context.Context, id string, n int) (bool, error) {
	return r.modify(id, func(p *entity.Product) bool {
		if p.Cantidad < n {
			return false
		}
		p.Cantidad -= n
		return true
	})
}

func (r *ProductRepo) SetQuantity(_ context.Context, id string, cantidad int) error {
	if cantidad < 0 {
		return domain.Invalid("cantidad", "no puede ser negativa")
	}
	if cantidad > domain.MaxCantidad {
		return domain.QuantityOverflow()
	}
	_, err := r.modify(id, func(p *entity.Product) bool { p.Cantidad = cantidad; return true })
	return err
}

func (r *ProductRepo) SetPurchasePrice(_ context.Context, id string, precio decimal.Decimal) error {
	_, err := r.modify(id, func(p *entity.Product) bool { p.PrecioCompra = precio; return true })
	return err
}

func (r *ProductRepo) DeleteCascade(_ context.Context, jefeID, id string) (bool, error) {
	deleted := false
	err := r.c.write(func(st *state) error {
		if st.product(jefeID, id) == nil {
			return nil
		}
		st.lines = deleteWhere(st.lines, func(l entity.SaleLine) bool { return l.ProductoID == id })
		st.movements = deleteWhere(st.movements, func(m entity.Movement) bool { return m.ProductoID == id })
		deleteFunc(st.exits, func(e entity.Exit) bool { return e.ProductoID == id })
		deleteFunc(st.entries, func(e entity.Entry) bool { return e.ProductoID == id })
		deleteFunc(st.returns, func(r entity.Return) bool { return r.ProductoID == id })
		deleteFunc(st.lots, func(l entity.Lot) bool { return l.ProductoID == id })
		delete(st.products, id)
		deleted = true
		return nil
	})
	return deleted, err
}

func deleteWhere[T any](s []T, match func(T) bool) []T {
	out := s[:0:0]
	for _, v := range s {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}

func deleteFunc[T any](m map[string]T, match func(T) bool) {
	for k, v := range m {
		if match(v) {
			delete(m, k)
		}
	}
}

// LotRepo lotes en memoria.
type LotRepo struct {
	c conn
}

func (r *LotRepo) Create(_ context.Context, lot *entity.Lot) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.products[lot.ProductoID]; !ok {
			return fmt.Errorf("producto %s: %w", lot.ProductoID, domain.ErrNotFound)
		}
		if lot.Cantidad < 0 {
			return domain.Invalid("cantidad", "no puede ser negativa")
		}
		if lot.Cantidad > domain.MaxCantidad {
			return domain.QuantityOverflow()
		}
		st.lots[lot.ID] = *lot
		return nil
	})
}

func (r *LotRepo) GetForUpdate(_ context.Context, id string) (*entity.Lot, error) {
	var out *entity.Lot
	r.c.read(func(st *state) {
		if l, ok := st.lots[id]; ok {
			out = &l
		}
	})
	return out, nil
}

func (r *LotRepo) ListByProductForUpdate(_ context.Context, productoID string, onlyForSale bool) ([]entity.Lot, error) {
	var out []entity.Lot
	r.c.read(func(st *state) {
		for _, l := range st.lots {
			if l.ProductoID == productoID && (!onlyForSale || l.EnVenta) {
				out = append(out, l)
			}
		}
	})
	sortLots(out)
	return out, nil
}

func sortLots(lots []entity.Lot) {
	sort.Slice(lots, func(i, j int) bool {
		if !lots[i].FechaIngreso.Equal(lots[j].FechaIngreso) {
			return lots[i].FechaIngreso.Before(lots[j].FechaIngreso)
		}
		return lots[i].ID < lots[j].ID
	})
}

func (r *LotRepo) Increment(_ context.Context, id string, n int) error {
	return r.c.write(func(st *state) error {
		l, ok := st.lots[id]
		if !ok {
			return fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
		}
		if !domain.FitsQuantity(l.Cantidad, n) {
			return domain.QuantityOverflow()
		}
		l.Cantidad += n
		st.lots[id] = l
		return nil
	})
}

func (r *LotRepo) Decrement(_ context.Context, id string, n int) (bool, error) {
	applied := false
	err := r.c.write(func(st *state) error {
		l, ok := st.lots[id]
		if !ok || l.Cantidad < n {
			return nil
		}
		l.Cantidad -= n
		st.lots[id] = l
		applied = true
		return nil
	})
	return applied, err
}

func (r *LotRepo) ListByJefe(_ context.Context, jefeID string) ([]repository.LotView, error) {
	var out []repository.LotView
	r.c.read(func(st *state) {
		for _, l := range st.lots {
			p, ok := st.products[l.ProductoID]
			if ok && p.JefeID == jefeID {
				out = append(out, repository.LotView{Lot: l, Producto: p.Nombre})
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Producto != out[j].Producto {
			return out[i].Producto < out[j].Producto
		}
		if !out[i].FechaIngreso.Equal(out[j].FechaIngreso) {
			return out[i].FechaIngreso.Before(out[j].FechaIngreso)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LotRepo) SetForSale(_ context.Context, jefeID, id string, enVenta bool) (bool, error) {
	found := false
	err := r.c.write(func(st *state) error {
		l, ok := st.lots[id]
		if !ok || st.product(jefeID, l.ProductoID) == nil {
			return nil
		}
		l.EnVenta = enVenta
		st.lots[id] = l
		found = true
		return nil
	})
	return found, err
}
