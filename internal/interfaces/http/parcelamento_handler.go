package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	appsync "github.com/agrosystemapp/agroserver-api/internal/application/sync"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
)

// ParcelamentoHandler trata as rotas de parcelamentos.
type ParcelamentoHandler struct {
	repo   repository.ParcelamentoRepository
	syncer *appsync.ParcelamentoSyncer
}

// NewParcelamentoHandler constrói o handler.
func NewParcelamentoHandler(repo repository.ParcelamentoRepository, syncer *appsync.ParcelamentoSyncer) *ParcelamentoHandler {
	return &ParcelamentoHandler{repo: repo, syncer: syncer}
}

// List GET /api/parcelamentos?cliente=&limit=&offset=
func (h *ParcelamentoHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	cliente := c.Query("cliente")

	list, err := h.repo.List(c.Context(), cliente, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao listar parcelamentos"})
	}
	return c.JSON(fiber.Map{
		"data":   list,
		"limit":  limit,
		"offset": offset,
		"total":  len(list),
	})
}

// GetByID GET /api/parcelamentos/:id (id local ou id do Asaas)
func (h *ParcelamentoHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.repo.GetByIDOrAsaasID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao buscar parcelamento"})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Mensagem: "Parcelamento não encontrado"})
	}
	return c.JSON(p)
}

// Sync POST /api/parcelamentos/sync
func (h *ParcelamentoHandler) Sync(c *fiber.Ctx) error {
	res, err := h.syncer.Run(c.Context())
	return syncJSON(c, res, err)
}
