package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	"github.com/agrosystemapp/agroserver-api/internal/application/vendas"
	"github.com/agrosystemapp/agroserver-api/internal/domain"
)

// VendaHandler trata as rotas de vendas parceladas.
type VendaHandler struct {
	uc *vendas.UseCase
}

// NewVendaHandler constrói o handler.
func NewVendaHandler(uc *vendas.UseCase) *VendaHandler {
	return &VendaHandler{uc: uc}
}

// Create POST /api/vendas (multipart: campos + fotoFicha)
func (h *VendaHandler) Create(c *fiber.Ctx) error {
	var in dto.VendaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: "Formulário inválido"})
	}
	foto, err := c.FormFile("fotoFicha")
	if err != nil {
		foto = nil
	}

	out, err := h.uc.Cadastrar(c.Context(), in, foto)
	if err != nil {
		var valErr *vendas.ErroValidacao
		if errors.As(err, &valErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: valErr.Mensagem})
		}
		if errors.Is(err, domain.ErrNaoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Mensagem: "Cliente não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro interno ao processar venda"})
	}
	return c.JSON(out)
}

// CarnePDF GET /api/vendas/:id/pdf
func (h *VendaHandler) CarnePDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.CarnePDF(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNaoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Mensagem: "Carnê não disponível"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao buscar carnê"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "carne_parcelamento_"+id+".pdf"))
	return c.SendStream(pdf)
}
