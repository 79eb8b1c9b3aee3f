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

type fakeParcelamentoAPI struct {
	parcelamentos []asaas.Parcelamento
	chamadas      []chamadaPagina
}

func (f *fakeParcelamentoAPI) ListParcelamentos(_ context.Context, offset, limit int) (*asaas.Pagina[asaas.Parcelamento], error) {
	f.chamadas = append(f.chamadas, chamadaPagina{Offset: offset, Limit: limit})
	fim := offset + limit
	if fim > len(f.parcelamentos) {
		fim = len(f.parcelamentos)
	}
	var dados []asaas.Parcelamento
	if offset < len(f.parcelamentos) {
		dados = f.parcelamentos[offset:fim]
	}
	return &asaas.Pagina[asaas.Parcelamento]{Data: dados, HasMore: fim < len(f.parcelamentos)}, nil
}

type memParcelamentoRepo struct {
	porAsaasID map[string]*entity.Parcelamento
	proximoID  int64
}

var _ repository.ParcelamentoRepository = (*memParcelamentoRepo)(nil)

func newMemParcelamentoRepo() *memParcelamentoRepo {
	return &memParcelamentoRepo{porAsaasID: make(map[string]*entity.Parcelamento)}
}

func (r *memParcelamentoRepo) FindIDByAsaasID(_ context.Context, asaasID string) (int64, error) {
	if p, ok := r.porAsaasID[asaasID]; ok {
		return p.ID, nil
	}
	return 0, nil
}

func (r *memParcelamentoRepo) Create(_ context.Context, p *entity.Parcelamento) (int64, error) {
	r.proximoID++
	p.ID = r.proximoID
	copia := *p
	r.porAsaasID[p.AsaasID] = &copia
	return p.ID, nil
}

func (r *memParcelamentoRepo) UpdateByAsaasID(_ context.Context, p *entity.Parcelamento) error {
	atual, ok := r.porAsaasID[p.AsaasID]
	if !ok {
		return errors.New("update sem linha correspondente")
	}
	copia := *p
	copia.ID = atual.ID
	r.porAsaasID[p.AsaasID] = &copia
	return nil
}

func (r *memParcelamentoRepo) GetByIDOrAsaasID(_ context.Context, id string) (*entity.Parcelamento, error) {
	if p, ok := r.porAsaasID[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (r *memParcelamentoRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Parcelamento, error) {
	var out []*entity.Parcelamento
	for _, p := range r.porAsaasID {
		out = append(out, p)
	}
	return out, nil
}

// Parcelamentos pagam em páginas de 50, com o mesmo upsert idempotente dos
// clientes e sem reconciliação.
func TestParcelamentoSyncer_PaginasDe50(t *testing.T) {
	parcelamentos := make([]asaas.Parcelamento, 0, 120)
	for i := 0; i < 120; i++ {
		parcelamentos = append(parcelamentos, asaas.Parcelamento{
			ID:    "ins_" + string(rune('a'+i%26)) + string(rune('0'+i/26)),
			Value: decimal.NewFromInt(int64(100 + i)),
		})
	}
	api := &fakeParcelamentoAPI{parcelamentos: parcelamentos}
	repo := newMemParcelamentoRepo()
	syncer := sync.NewParcelamentoSyncer(api, repo, &fakeSleeper{}, testLogger())

	res, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, res.Processados)
	assert.Equal(t, 120, res.Novos)
	assert.Equal(t, 0, res.Desativados, "parcelamentos não reconciliam")
	assert.Equal(t, []chamadaPagina{{0, 50}, {50, 50}, {100, 50}}, api.chamadas)
}

func TestParcelamentoSyncer_Reexecucao_Idempotente(t *testing.T) {
	api := &fakeParcelamentoAPI{parcelamentos: []asaas.Parcelamento{
		{ID: "ins_a", Value: decimal.NewFromInt(500), InstallmentCount: 5, Customer: "cus_a"},
	}}
	repo := newMemParcelamentoRepo()
	syncer := sync.NewParcelamentoSyncer(api, repo, &fakeSleeper{}, testLogger())

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)
	res, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Atualizados)
	assert.Equal(t, 0, res.Novos)
	require.Len(t, repo.porAsaasID, 1)
	p := repo.porAsaasID["ins_a"]
	assert.Equal(t, "cus_a", p.ClienteAsaasID)
	assert.True(t, p.Valor.Equal(decimal.NewFromInt(500)))
}
