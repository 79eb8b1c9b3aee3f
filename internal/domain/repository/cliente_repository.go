package repository

import (
	"context"

	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
)

// ClientesFilter filtros do listado de clientes.
// Busca aplica a nome (ILIKE) e, se contiver dígitos, também a cpf_cnpj.
// Ordem aceita "nome", "criado_em" ou "id" (qualquer outro valor cai em "nome").
type ClientesFilter struct {
	Busca  string
	Ordem  string
	Limite int
	Offset int
}

// ClienteRepository define o porto de persistência para Cliente.
//
// FindIDByAsaasID + Create/UpdateByAsaasID formam o contrato de upsert do
// sync: lookup antes de cada escrita, insert no miss, overwrite completo no
// hit. Após qualquer um dos ramos existe exatamente uma linha para o AsaasID.
type ClienteRepository interface {
	FindIDByAsaasID(ctx context.Context, asaasID string) (int64, error) // 0 quando ausente
	Create(ctx context.Context, c *entity.Cliente) (int64, error)
	UpdateByAsaasID(ctx context.Context, c *entity.Cliente) error

	GetByID(ctx context.Context, id int64) (*entity.Cliente, error) // apenas ativos
	GetAtivoByDocumento(ctx context.Context, cpfCnpj string) (*entity.Cliente, error)
	List(ctx context.Context, f ClientesFilter) ([]*entity.Cliente, error)

	// Reconciliação pós-sync: enumerar ativos e marcar soft-delete um a um.
	ListAtivosAsaasIDs(ctx context.Context) ([]string, error)
	SoftDeleteByAsaasID(ctx context.Context, asaasID string) error
}
