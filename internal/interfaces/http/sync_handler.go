package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	appsync "github.com/agrosystemapp/agroserver-api/internal/application/sync"
	"github.com/agrosystemapp/agroserver-api/internal/domain"
)

// SyncHandler trata a sincronização completa.
type SyncHandler struct {
	tudo *appsync.TudoSyncer
}

// NewSyncHandler constrói o handler.
func NewSyncHandler(tudo *appsync.TudoSyncer) *SyncHandler {
	return &SyncHandler{tudo: tudo}
}

// SyncTudo POST /api/sync - clientes, parcelamentos e cobranças em sequência.
func (h *SyncHandler) SyncTudo(c *fiber.Ctx) error {
	res, err := h.tudo.Run(c.Context())

	out := dto.SyncTudoResponse{Success: err == nil}
	if res != nil {
		out.Clientes = toSyncResponse(res.Clientes)
		out.Parcelamentos = toSyncResponse(res.Parcelamentos)
		out.Cobrancas = toSyncResponse(res.Cobrancas)
	}
	if err != nil {
		if errors.Is(err, domain.ErrSyncEmAndamento) {
			return c.Status(fiber.StatusConflict).JSON(dto.SyncTudoResponse{Success: false})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(out)
	}
	return c.JSON(out)
}

func toSyncResponse(r *appsync.Resultado) *dto.SyncResponse {
	if r == nil {
		return nil
	}
	return &dto.SyncResponse{
		Success:     true,
		Total:       r.Processados,
		Novos:       r.Novos,
		Atualizados: r.Atualizados,
		Desativados: r.Desativados,
		Cancelado:   r.Cancelado,
	}
}
