package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/agrosystemapp/agroserver-api/internal/application/auth"
	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	"github.com/agrosystemapp/agroserver-api/internal/domain"
)

// AuthHandler trata as rotas de autenticação.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: "Corpo da requisição inválido"})
	}
	usuario, err := h.uc.Register(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntradaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: "Dados de cadastro inválidos"})
		case errors.Is(err, domain.ErrEmailJaCadastrado):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: "Email já cadastrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao cadastrar usuário"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sucesso":  true,
		"mensagem": "Usuário cadastrado com sucesso",
		"usuario":  usuario,
	})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: "Corpo da requisição inválido"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntradaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: "Email e senha são obrigatórios"})
		case errors.Is(err, domain.ErrUsuarioNaoEncontrado), errors.Is(err, domain.ErrNaoAutorizado):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Mensagem: "Email ou senha incorretos"})
		case errors.Is(err, domain.ErrUsuarioDesativado):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Mensagem: "Usuário desativado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao realizar login"})
	}
	return c.JSON(out)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	usuario, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNaoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Mensagem: "Usuário não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao buscar usuário"})
	}
	return c.JSON(fiber.Map{"sucesso": true, "usuario": usuario})
}
