package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/pkg/jwt"
)

// Locals keys preenchidas pelo AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalNome   = "nome"
	LocalTipo   = "tipo"
)

// AuthMiddleware valida o Bearer Token JWT e copia as claims para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Mensagem: "Token de acesso requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Mensagem: "Formato do token inválido. Use: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Mensagem: "Token de acesso requerido"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Mensagem: "Token inválido ou expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalNome, claims.Nome)
		c.Locals(LocalTipo, claims.Tipo)
		return c.Next()
	}
}

// RequireAdmin exige tipo administrador. Usar depois do AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetTipo(c) != entity.TipoAdministrador {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Mensagem: "Acesso restrito a administradores"})
		}
		return c.Next()
	}
}

// GetUserID devolve o id do usuário autenticado.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetNome devolve o nome do usuário autenticado.
func GetNome(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalNome).(string)
	return s
}

// GetTipo devolve o tipo do usuário autenticado.
func GetTipo(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTipo).(string)
	return s
}
