package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro y login de jefes.
type AuthUseCase struct {
	jefes  repository.JefeRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(jefes repository.JefeRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{jefes: jefes, jwtCfg: jwtCfg}
}

// Register crea un jefe con la contraseña hasheada con bcrypt. domain.ErrDuplicate si el usuario existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterJefeRequest) (*dto.JefeResponse, error) {
	usuario := strings.TrimSpace(in.Usuario)
	existing, err := uc.jefes.GetByUsuario(ctx, usuario)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("usuario %q: %w", usuario, domain.ErrDuplicate)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash contraseña: %w", err)
	}
	jefe := &entity.Jefe{
		ID:           uuid.New().String(),
		Usuario:      usuario,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.jefes.Create(ctx, jefe); err != nil {
		return nil, err
	}
	return toJefeResponse(jefe), nil
}

// Login verifica usuario y contraseña y emite el token. domain.ErrUnauthorized si no coinciden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	jefe, err := uc.jefes.GetByUsuario(ctx, strings.TrimSpace(in.Usuario))
	if err != nil {
		return nil, err
	}
	if jefe == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(jefe.PasswordHash), []byte(in.Contrasena)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jefe.ID, jefe.Usuario, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Jefe: *toJefeResponse(jefe)}, nil
}

func toJefeResponse(j *entity.Jefe) *dto.JefeResponse {
	return &dto.JefeResponse{ID: j.ID, Usuario: j.Usuario, CreatedAt: j.CreatedAt}
}
