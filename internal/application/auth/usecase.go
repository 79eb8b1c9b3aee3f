package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
	"github.com/agrosystemapp/agroserver-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticação: cadastro, login e perfil.
type UseCase struct {
	repo   repository.UsuarioRepository
	jwtCfg JWTConfig
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(repo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{repo: repo, jwtCfg: jwtCfg}
}

// Register cria um usuário: valida email e senha, hasheia com bcrypt e
// persiste. Devolve ErrEmailJaCadastrado quando o email já existe.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	if in.Nome == "" || in.Email == "" || in.Senha == "" {
		return nil, domain.ErrEntradaInvalida
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrEntradaInvalida
	}
	if len(in.Senha) < 6 {
		return nil, domain.ErrEntradaInvalida
	}
	tipo := in.TipoUsuario
	if tipo == "" {
		tipo = entity.TipoVendedor
	}
	if tipo != entity.TipoVendedor && tipo != entity.TipoAdministrador {
		return nil, domain.ErrEntradaInvalida
	}

	existente, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailJaCadastrado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usuario := &entity.Usuario{
		ID:          uuid.New().String(),
		Nome:        in.Nome,
		Email:       email,
		SenhaHash:   string(hash),
		TipoUsuario: tipo,
		Ativo:       true,
		CriadoEm:    time.Now(),
	}
	if err := uc.repo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Login verifica email/senha, registra o acesso e devolve token JWT.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Senha == "" {
		return nil, domain.ErrEntradaInvalida
	}
	usuario, err := uc.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNaoEncontrado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(in.Senha)); err != nil {
		return nil, domain.ErrNaoAutorizado
	}
	if !usuario.Ativo {
		return nil, domain.ErrUsuarioDesativado
	}
	if err := uc.repo.RegistrarLogin(ctx, usuario.ID); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Email, usuario.Nome, usuario.TipoUsuario, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Sucesso: true,
		Token:   token,
		Usuario: *toUsuarioResponse(usuario),
	}, nil
}

// Me devolve o perfil do usuário autenticado.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNaoEncontrado
	}
	return toUsuarioResponse(usuario), nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:          u.ID,
		Nome:        u.Nome,
		Email:       u.Email,
		TipoUsuario: u.TipoUsuario,
		Ativo:       u.Ativo,
		CriadoEm:    u.CriadoEm,
		UltimoLogin: u.UltimoLogin,
	}
}
