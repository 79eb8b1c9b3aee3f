package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	appsync "github.com/agrosystemapp/agroserver-api/internal/application/sync"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
)

// CobrancaHandler trata as rotas de cobranças.
type CobrancaHandler struct {
	repo   repository.CobrancaRepository
	syncer *appsync.CobrancaSyncer
}

// NewCobrancaHandler constrói o handler.
func NewCobrancaHandler(repo repository.CobrancaRepository, syncer *appsync.CobrancaSyncer) *CobrancaHandler {
	return &CobrancaHandler{repo: repo, syncer: syncer}
}

// List GET /api/cobrancas?cliente=&status=&forma_pagamento=&parcelamento=&limit=&offset=
func (h *CobrancaHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	list, err := h.repo.List(c.Context(), repository.CobrancasFilter{
		ClienteAsaasID: c.Query("cliente"),
		Status:         c.Query("status"),
		FormaPagamento: c.Query("forma_pagamento"),
		ParcelamentoID: c.Query("parcelamento"),
		Limite:         limit,
		Offset:         offset,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao listar cobranças"})
	}
	return c.JSON(fiber.Map{
		"data":   list,
		"limit":  limit,
		"offset": offset,
		"total":  len(list),
	})
}

// GetByID GET /api/cobrancas/:id (id local ou id do Asaas)
func (h *CobrancaHandler) GetByID(c *fiber.Ctx) error {
	cob, err := h.repo.GetByIDOrAsaasID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao buscar cobrança"})
	}
	if cob == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Mensagem: "Cobrança não encontrada"})
	}
	return c.JSON(cob)
}

// Sync POST /api/cobrancas/sync
func (h *CobrancaHandler) Sync(c *fiber.Ctx) error {
	res, err := h.syncer.Run(c.Context())
	return syncJSON(c, res, err)
}
