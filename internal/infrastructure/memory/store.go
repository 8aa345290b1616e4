// Package memory implementa los repositorios en memoria. Sirve para desarrollo sin base de datos
// (STORAGE_DRIVER=memory) y para los tests de casos de uso.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	jefes     map[string]entity.Jefe
	products  map[string]entity.Product
	lots      map[string]entity.Lot
	movements []entity.Movement
	entries   map[string]entity.Entry
	exits     map[string]entity.Exit
	sales     map[string]entity.Sale
	lines     []entity.SaleLine
	returns   map[string]entity.Return
	history   []entity.History
	clients   map[string]entity.Client
	suppliers map[string]entity.Supplier
}

func newState() *state {
	return &state{
		jefes:     map[string]entity.Jefe{},
		products:  map[string]entity.Product{},
		lots:      map[string]entity.Lot{},
		entries:   map[string]entity.Entry{},
		exits:     map[string]entity.Exit{},
		sales:     map[string]entity.Sale{},
		returns:   map[string]entity.Return{},
		clients:   map[string]entity.Client{},
		suppliers: map[string]entity.Supplier{},
	}
}

func (s *state) clone() *state {
	return &state{
		jefes:     maps.Clone(s.jefes),
		products:  maps.Clone(s.products),
		lots:      maps.Clone(s.lots),
		movements: slices.Clone(s.movements),
		entries:   maps.Clone(s.entries),
		exits:     maps.Clone(s.exits),
		sales:     maps.Clone(s.sales),
		lines:     slices.Clone(s.lines),
		returns:   maps.Clone(s.returns),
		history:   slices.Clone(s.history),
		clients:   maps.Clone(s.clients),
		suppliers: maps.Clone(s.suppliers),
	}
}

// Store guarda todo el estado tras un mutex. Las transacciones se serializan y, si fallan,
// el estado vuelve a la copia tomada al empezar.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// conn acceso al estado. inTx indica que el mutex ya lo tiene Run.
type conn struct {
	store *Store
	inTx  bool
}

func (c conn) read(fn func(st *state)) {
	if !c.inTx {
		c.store.mu.Lock()
		defer c.store.mu.Unlock()
	}
	fn(c.store.st)
}

func (c conn) write(fn func(st *state) error) error {
	if !c.inTx {
		c.store.mu.Lock()
		defer c.store.mu.Unlock()
	}
	return fn(c.store.st)
}

// Run ejecuta fn con repositorios transaccionales. Un error o un panic de fn, o un contexto
// cancelado, descartan todos los cambios.
func (s *Store) Run(ctx context.Context, fn func(repository.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
	}()
	if err := fn(stores(conn{store: s, inTx: true})); err != nil {
		s.st = snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Catalog devuelve los repositorios fuera de transacción.
func (s *Store) Catalog() repository.Catalog {
	c := conn{store: s}
	return repository.Catalog{
		Stores:    stores(c),
		Jefes:     &JefeRepo{c: c},
		Clients:   &ClientRepo{c: c},
		Suppliers: &SupplierRepo{c: c},
		History:   &HistoryRepo{c: c},
	}
}

func stores(c conn) repository.Stores {
	return repository.Stores{
		Products:  &ProductRepo{c: c},
		Lots:      &LotRepo{c: c},
		Movements: &MovementRepo{c: c},
		Entries:   &EntryRepo{c: c},
		Exits:     &ExitRepo{c: c},
		Sales:     &SaleRepo{c: c},
		Returns:   &ReturnRepo{c: c},
	}
}
