package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, nome, email, senha_hash, tipo_usuario, ativo, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Nome, u.Email, u.SenhaHash, u.TipoUsuario, u.Ativo, u.CriadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailJaCadastrado
		}
		return fmt.Errorf("insert usuário: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, nome, email, senha_hash, tipo_usuario, ativo, criado_em, ultimo_login
		FROM usuarios WHERE email = $1`, email)
	return scanUsuario(row)
}

func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, nome, email, senha_hash, tipo_usuario, ativo, criado_em, ultimo_login
		FROM usuarios WHERE id = $1`, id)
	return scanUsuario(row)
}

func (r *UsuarioRepo) RegistrarLogin(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE usuarios SET ultimo_login = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("registrar login: %w", err)
	}
	return nil
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.TipoUsuario, &u.Ativo, &u.CriadoEm, &u.UltimoLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar usuário: %w", err)
	}
	return &u, nil
}
