package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ClientUseCase alta, consulta y edición de clientes del jefe.
type ClientUseCase struct {
	repo     repository.ClientRepository
	recorder *inventory.Recorder
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, recorder *inventory.Recorder) *ClientUseCase {
	return &ClientUseCase{repo: repo, recorder: recorder}
}

// Create registra un cliente.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.Invalid("nombre", "requerido")
	}
	c := &entity.Client{
		ID:        uuid.New().String(),
		JefeID:    in.JefeID,
		Nombre:    nombre,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.recorder.History(ctx, in.JefeID, "crear cliente", fmt.Sprintf("Cliente %s registrado", c.Nombre))
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente del jefe.
func (uc *ClientUseCase) GetByID(ctx context.Context, jefeID, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, jefeID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return toClientResponse(c), nil
}

// List lista los clientes del jefe.
func (uc *ClientUseCase) List(ctx context.Context, jefeID string) ([]dto.ClientResponse, error) {
	list, err := uc.repo.ListByJefe(ctx, jefeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos de contacto del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, in.JefeID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.Invalid("nombre", "requerido")
	}
	c.Nombre = nombre
	c.Telefono = in.Telefono
	c.Email = in.Email
	c.Direccion = in.Direccion
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.recorder.History(ctx, in.JefeID, "editar cliente", fmt.Sprintf("Cliente %s actualizado", c.Nombre))
	return toClientResponse(c), nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		CreatedAt: c.CreatedAt,
	}
}

// SupplierUseCase alta y consulta de proveedores del jefe.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	recorder *inventory.Recorder
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, recorder *inventory.Recorder) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, recorder: recorder}
}

// Create registra un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.Invalid("nombre", "requerido")
	}
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		JefeID:    in.JefeID,
		Nombre:    nombre,
		Contacto:  in.Contacto,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.recorder.History(ctx, in.JefeID, "crear proveedor", fmt.Sprintf("Proveedor %s registrado", s.Nombre))
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor del jefe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, jefeID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, jefeID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
	}
	return toSupplierResponse(s), nil
}

// List lista los proveedores del jefe.
func (uc *SupplierUseCase) List(ctx context.Context, jefeID string) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.ListByJefe(ctx, jefeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Nombre:    s.Nombre,
		Contacto:  s.Contacto,
		Telefono:  s.Telefono,
		Email:     s.Email,
		Direccion: s.Direccion,
		CreatedAt: s.CreatedAt,
	}
}
