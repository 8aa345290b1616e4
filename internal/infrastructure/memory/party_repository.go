package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ repository.JefeRepository     = (*JefeRepo)(nil)
	_ repository.ClientRepository   = (*ClientRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.HistoryRepository  = (*HistoryRepo)(nil)
)

// JefeRepo jefes en memoria.
type JefeRepo struct {
	c conn
}

func (r *JefeRepo) Create(_ context.Context, j *entity.Jefe) error {
	return r.c.write(func(st *state) error {
		for _, other := range st.jefes {
			if other.Usuario == j.Usuario {
				return fmt.Errorf("usuario %q: %w", j.Usuario, domain.ErrDuplicate)
			}
		}
		st.jefes[j.ID] = *j
		return nil
	})
}

func (r *JefeRepo) GetByUsuario(_ context.Context, usuario string) (*entity.Jefe, error) {
	var out *entity.Jefe
	r.c.read(func(st *state) {
		for _, j := range st.jefes {
			if j.Usuario == usuario {
				out = &j
				return
			}
		}
	})
	return out, nil
}

// ClientRepo clientes en memoria.
type ClientRepo struct {
	c conn
}

func (r *ClientRepo) Create(_ context.Context, cl *entity.Client) error {
	return r.c.write(func(st *state) error {
		st.clients[cl.ID] = *cl
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, jefeID, id string) (*entity.Client, error) {
	var out *entity.Client
	r.c.read(func(st *state) {
		if cl, ok := st.clients[id]; ok && cl.JefeID == jefeID {
			out = &cl
		}
	})
	return out, nil
}

func (r *ClientRepo) ListByJefe(_ context.Context, jefeID string) ([]*entity.Client, error) {
	var out []*entity.Client
	r.c.read(func(st *state) {
		for _, cl := range st.clients {
			if cl.JefeID == jefeID {
				out = append(out, &cl)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *ClientRepo) Update(_ context.Context, cl *entity.Client) error {
	return r.c.write(func(st *state) error {
		cur, ok := st.clients[cl.ID]
		if !ok || cur.JefeID != cl.JefeID {
			return fmt.Errorf("cliente %s: %w", cl.ID, domain.ErrNotFound)
		}
		cur.Nombre = cl.Nombre
		cur.Telefono = cl.Telefono
		cur.Email = cl.Email
		cur.Direccion = cl.Direccion
		st.clients[cl.ID] = cur
		return nil
	})
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	c conn
}

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.c.write(func(st *state) error {
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, jefeID, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.c.read(func(st *state) {
		if s, ok := st.suppliers[id]; ok && s.JefeID == jefeID {
			out = &s
		}
	})
	return out, nil
}

func (r *SupplierRepo) ListByJefe(_ context.Context, jefeID string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	r.c.read(func(st *state) {
		for _, s := range st.suppliers {
			if s.JefeID == jefeID {
				out = append(out, &s)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

// HistoryRepo historial en memoria.
type HistoryRepo struct {
	c conn
}

func (r *HistoryRepo) Create(_ context.Context, h *entity.History) error {
	return r.c.write(func(st *state) error {
		st.history = append(st.history, *h)
		return nil
	})
}

func (r *HistoryRepo) ListByJefe(_ context.Context, jefeID string, limit int) ([]*entity.History, error) {
	var out []*entity.History
	r.c.read(func(st *state) {
		for i := len(st.history) - 1; i >= 0; i-- {
			if h := st.history[i]; h.JefeID == jefeID {
				out = append(out, &h)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
