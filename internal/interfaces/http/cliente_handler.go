package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/agrosystemapp/agroserver-api/internal/application/clientes"
	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	appsync "github.com/agrosystemapp/agroserver-api/internal/application/sync"
	"github.com/agrosystemapp/agroserver-api/internal/domain"
)

// ClienteHandler trata as rotas de clientes.
type ClienteHandler struct {
	uc     *clientes.UseCase
	syncer *appsync.ClienteSyncer
}

// NewClienteHandler constrói o handler.
func NewClienteHandler(uc *clientes.UseCase, syncer *appsync.ClienteSyncer) *ClienteHandler {
	return &ClienteHandler{uc: uc, syncer: syncer}
}

// Create POST /api/clientes (multipart: campos + fotoDocumento)
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CadastroClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: "Formulário inválido"})
	}
	foto, err := c.FormFile("fotoDocumento")
	if err != nil {
		foto = nil
	}
	vendedorID, _ := strconv.ParseInt(in.VendedorID, 10, 64)

	out, err := h.uc.Cadastrar(c.Context(), in, foto, vendedorID)
	if err != nil {
		var valErr *clientes.ErroValidacao
		if errors.As(err, &valErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: valErr.Mensagem})
		}
		var confErr *clientes.ErroConflito
		if errors.As(err, &confErr) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"sucesso":  false,
				"mensagem": confErr.Mensagem,
				"cliente":  confErr.Cliente,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro interno ao processar cadastro"})
	}
	return c.JSON(out)
}

// List GET /api/clientes?busca=&ordem=&limite=&pagina=
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	var in dto.ListarClientesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: "Parâmetros inválidos"})
	}
	out, err := h.uc.Listar(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao buscar clientes"})
	}
	return c.JSON(out)
}

// GetByID GET /api/clientes/:id
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Mensagem: "ID inválido"})
	}
	cliente, err := h.uc.BuscarPorID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNaoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Mensagem: "Cliente não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Mensagem: "Erro ao buscar cliente"})
	}
	return c.JSON(fiber.Map{"sucesso": true, "cliente": cliente})
}

// Sync POST /api/clientes/sync
func (h *ClienteHandler) Sync(c *fiber.Ctx) error {
	res, err := h.syncer.Run(c.Context())
	return syncJSON(c, res, err)
}

// syncJSON converte um Resultado de sincronização em resposta HTTP: 409 para
// execução já em andamento, 500 com contadores parciais para falha.
func syncJSON(c *fiber.Ctx, res *appsync.Resultado, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrSyncEmAndamento) {
			return c.Status(fiber.StatusConflict).JSON(dto.SyncResponse{
				Success: false,
				Message: "Sincronização já em andamento",
			})
		}
		out := dto.SyncResponse{Success: false, Message: err.Error()}
		if res != nil {
			out.Total = res.Processados
			out.Novos = res.Novos
			out.Atualizados = res.Atualizados
			out.Desativados = res.Desativados
		}
		return c.Status(fiber.StatusInternalServerError).JSON(out)
	}
	return c.JSON(dto.SyncResponse{
		Success:     true,
		Total:       res.Processados,
		Novos:       res.Novos,
		Atualizados: res.Atualizados,
		Desativados: res.Desativados,
		Cancelado:   res.Cancelado,
	})
}
