package repository

import (
	"context"

	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
)

// ParcelamentoRepository define o porto de persistência para Parcelamento.
type ParcelamentoRepository interface {
	FindIDByAsaasID(ctx context.Context, asaasID string) (int64, error) // 0 quando ausente
	Create(ctx context.Context, p *entity.Parcelamento) (int64, error)
	UpdateByAsaasID(ctx context.Context, p *entity.Parcelamento) error

	// GetByIDOrAsaasID aceita o id local (numérico) ou o id do Asaas.
	GetByIDOrAsaasID(ctx context.Context, id string) (*entity.Parcelamento, error)
	List(ctx context.Context, clienteAsaasID string, limite, offset int) ([]*entity.Parcelamento, error)
}
