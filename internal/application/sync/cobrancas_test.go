package sync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosystemapp/agroserver-api/internal/application/sync"
	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
)

type fakeCobrancaAPI struct {
	cobrancas []asaas.Cobranca
	chamadas  []chamadaPagina
}

func (f *fakeCobrancaAPI) ListCobrancas(_ context.Context, offset, limit int) (*asaas.Pagina[asaas.Cobranca], error) {
	f.chamadas = append(f.chamadas, chamadaPagina{Offset: offset, Limit: limit})
	fim := offset + limit
	if fim > len(f.cobrancas) {
		fim = len(f.cobrancas)
	}
	var dados []asaas.Cobranca
	if offset < len(f.cobrancas) {
		dados = f.cobrancas[offset:fim]
	}
	return &asaas.Pagina[asaas.Cobranca]{Data: dados, HasMore: fim < len(f.cobrancas)}, nil
}

type memCobrancaRepo struct {
	porAsaasID map[string]*entity.Cobranca
	proximoID  int64
}

var _ repository.CobrancaRepository = (*memCobrancaRepo)(nil)

func newMemCobrancaRepo() *memCobrancaRepo {
	return &memCobrancaRepo{porAsaasID: make(map[string]*entity.Cobranca)}
}

func (r *memCobrancaRepo) FindIDByAsaasID(_ context.Context, asaasID string) (int64, error) {
	if c, ok := r.porAsaasID[asaasID]; ok {
		return c.ID, nil
	}
	return 0, nil
}

func (r *memCobrancaRepo) Create(_ context.Context, c *entity.Cobranca) (int64, error) {
	r.proximoID++
	c.ID = r.proximoID
	copia := *c
	r.porAsaasID[c.AsaasID] = &copia
	return c.ID, nil
}

func (r *memCobrancaRepo) UpdateByAsaasID(_ context.Context, c *entity.Cobranca) error {
	atual, ok := r.porAsaasID[c.AsaasID]
	if !ok {
		return errors.New("update sem linha correspondente")
	}
	copia := *c
	copia.ID = atual.ID
	r.porAsaasID[c.AsaasID] = &copia
	return nil
}

func (r *memCobrancaRepo) GetByIDOrAsaasID(_ context.Context, id string) (*entity.Cobranca, error) {
	if c, ok := r.porAsaasID[id]; ok {
		return c, nil
	}
	return nil, nil
}

func (r *memCobrancaRepo) List(_ context.Context, _ repository.CobrancasFilter) ([]*entity.Cobranca, error) {
	var out []*entity.Cobranca
	for _, c := range r.porAsaasID {
		out = append(out, c)
	}
	return out, nil
}

// Cobranças paginam de 50 em 50; mudança de status remoto converge no espelho
// local pela reexecução.
func TestCobrancaSyncer_StatusConverge(t *testing.T) {
	api := &fakeCobrancaAPI{cobrancas: []asaas.Cobranca{
		{ID: "pay_a", Value: decimal.NewFromInt(100), Status: "PENDING", Customer: "cus_a"},
	}}
	repo := newMemCobrancaRepo()
	syncer := sync.NewCobrancaSyncer(api, repo, &fakeSleeper{}, testLogger())

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PENDING", repo.porAsaasID["pay_a"].Status)

	api.cobrancas[0].Status = "RECEIVED"
	api.cobrancas[0].PaymentDate = "2026-08-01"
	res, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Atualizados)
	c := repo.porAsaasID["pay_a"]
	assert.Equal(t, "RECEIVED", c.Status)
	assert.Equal(t, "2026-08-01", c.DataPagamento)
	assert.Equal(t, []chamadaPagina{{0, 50}, {0, 50}}, api.chamadas)
}
