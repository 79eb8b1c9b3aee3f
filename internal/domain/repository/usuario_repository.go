package repository

import (
	"context"

	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
)

// UsuarioRepository define o porto de persistência para contas locais.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) // nil quando ausente
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)       // nil quando ausente
	RegistrarLogin(ctx context.Context, id string) error                   // ultimo_login = now()
}
