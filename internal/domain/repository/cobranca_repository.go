package repository

import (
	"context"

	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
)

// CobrancasFilter filtros do listado de cobranças. Campos vazios não filtram.
type CobrancasFilter struct {
	ClienteAsaasID string
	Status         string
	FormaPagamento string
	ParcelamentoID string
	Limite         int
	Offset         int
}

// CobrancaRepository define o porto de persistência para Cobranca.
type CobrancaRepository interface {
	FindIDByAsaasID(ctx context.Context, asaasID string) (int64, error) // 0 quando ausente
	Create(ctx context.Context, c *entity.Cobranca) (int64, error)
	UpdateByAsaasID(ctx context.Context, c *entity.Cobranca) error

	// GetByIDOrAsaasID aceita o id local (numérico) ou o id do Asaas.
	GetByIDOrAsaasID(ctx context.Context, id string) (*entity.Cobranca, error)
	List(ctx context.Context, f CobrancasFilter) ([]*entity.Cobranca, error)
}
