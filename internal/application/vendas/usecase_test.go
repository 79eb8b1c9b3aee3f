package vendas_test

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	"github.com/agrosystemapp/agroserver-api/internal/application/vendas"
	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.Nop()
}

type fakeClienteRepo struct {
	porID map[int64]*entity.Cliente
}

var _ repository.ClienteRepository = (*fakeClienteRepo)(nil)

func (r *fakeClienteRepo) GetByID(_ context.Context, id int64) (*entity.Cliente, error) {
	return r.porID[id], nil
}

func (r *fakeClienteRepo) FindIDByAsaasID(context.Context, string) (int64, error) { return 0, nil }
func (r *fakeClienteRepo) Create(context.Context, *entity.Cliente) (int64, error) { return 0, nil }
func (r *fakeClienteRepo) UpdateByAsaasID(context.Context, *entity.Cliente) error { return nil }
func (r *fakeClienteRepo) GetAtivoByDocumento(context.Context, string) (*entity.Cliente, error) {
	return nil, nil
}
func (r *fakeClienteRepo) List(context.Context, repository.ClientesFilter) ([]*entity.Cliente, error) {
	return nil, nil
}
func (r *fakeClienteRepo) ListAtivosAsaasIDs(context.Context) ([]string, error) { return nil, nil }
func (r *fakeClienteRepo) SoftDeleteByAsaasID(context.Context, string) error    { return nil }

// memVendaRepos implementa os dois repositórios usados dentro da transação.
type memVendaRepos struct {
	parcelamentos []*entity.Parcelamento
	cobrancas     []*entity.Cobranca
	proximoID     int64
	erroCobranca  error
}

var (
	_ repository.ParcelamentoRepository = (*memVendaRepos)(nil)
	_ repository.CobrancaRepository     = cobrancaRepoAdapter{}
)

func (r *memVendaRepos) Create(_ context.Context, p *entity.Parcelamento) (int64, error) {
	r.proximoID++
	p.ID = r.proximoID
	r.parcelamentos = append(r.parcelamentos, p)
	return p.ID, nil
}

func (r *memVendaRepos) criarCobranca(c *entity.Cobranca) (int64, error) {
	if r.erroCobranca != nil {
		return 0, r.erroCobranca
	}
	r.proximoID++
	c.ID = r.proximoID
	r.cobrancas = append(r.cobrancas, c)
	return c.ID, nil
}

func (r *memVendaRepos) FindIDByAsaasID(context.Context, string) (int64, error) { return 0, nil }
func (r *memVendaRepos) UpdateByAsaasID(context.Context, *entity.Parcelamento) error {
	return nil
}
func (r *memVendaRepos) GetByIDOrAsaasID(_ context.Context, id string) (*entity.Parcelamento, error) {
	for _, p := range r.parcelamentos {
		if p.AsaasID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memVendaRepos) List(context.Context, string, int, int) ([]*entity.Parcelamento, error) {
	return nil, nil
}

// cobrancaRepoAdapter expõe memVendaRepos como CobrancaRepository sem colidir
// com os métodos de Parcelamento.
type cobrancaRepoAdapter struct{ *memVendaRepos }

func (a cobrancaRepoAdapter) Create(_ context.Context, c *entity.Cobranca) (int64, error) {
	return a.criarCobranca(c)
}
func (a cobrancaRepoAdapter) UpdateByAsaasID(context.Context, *entity.Cobranca) error { return nil }
func (a cobrancaRepoAdapter) GetByIDOrAsaasID(context.Context, string) (*entity.Cobranca, error) {
	return nil, nil
}
func (a cobrancaRepoAdapter) List(context.Context, repository.CobrancasFilter) ([]*entity.Cobranca, error) {
	return nil, nil
}

// fakeTxRunner executa o bloco direto sobre os repositórios em memória.
// rollback registra se o bloco devolveu erro (a transação seria desfeita).
type fakeTxRunner struct {
	repos    *memVendaRepos
	rollback bool
}

func (f *fakeTxRunner) RunVenda(_ context.Context, fn func(repository.ParcelamentoRepository, repository.CobrancaRepository) error) error {
	antes := *f.repos
	err := fn(f.repos, cobrancaRepoAdapter{f.repos})
	if err != nil {
		*f.repos = antes
		f.rollback = true
	}
	return err
}

type fakeGateway struct {
	criadas     []asaas.NovaCobranca
	installment string
	parcelas    []asaas.Cobranca
	erroCreate  error
	pdf         string
	erroPDF     error
	pdfChamadas []string
}

func (g *fakeGateway) CreateCobranca(_ context.Context, nova asaas.NovaCobranca) (*asaas.Cobranca, error) {
	if g.erroCreate != nil {
		return nil, g.erroCreate
	}
	g.criadas = append(g.criadas, nova)
	return &asaas.Cobranca{
		ID:          "pay_primeira",
		Installment: g.installment,
		Customer:    nova.Customer,
		Value:       nova.Value,
		DueDate:     nova.DueDate,
		BillingType: nova.BillingType,
	}, nil
}

func (g *fakeGateway) ListCobrancasDoParcelamento(_ context.Context, installmentID string, _ int) (*asaas.Pagina[asaas.Cobranca], error) {
	return &asaas.Pagina[asaas.Cobranca]{Data: g.parcelas}, nil
}

func (g *fakeGateway) PaymentBook(_ context.Context, installmentID string) (io.ReadCloser, error) {
	g.pdfChamadas = append(g.pdfChamadas, installmentID)
	if g.erroPDF != nil {
		return nil, g.erroPDF
	}
	return io.NopCloser(strings.NewReader(g.pdf)), nil
}

type fakeFotos struct {
	salvas    []string
	removidas []string
	erroSave  error
}

func (f *fakeFotos) Save(_ *multipart.FileHeader, subdir, nomeBase string) (string, error) {
	if f.erroSave != nil {
		return "", f.erroSave
	}
	rel := subdir + "/" + nomeBase + ".jpg"
	f.salvas = append(f.salvas, rel)
	return rel, nil
}

func (f *fakeFotos) Remove(relativo string) error {
	f.removidas = append(f.removidas, relativo)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Montagem
// ──────────────────────────────────────────────────────────────────────────────

type cenario struct {
	uc      *vendas.UseCase
	gateway *fakeGateway
	repos   *memVendaRepos
	tx      *fakeTxRunner
	fotos   *fakeFotos
}

func novoCenario(t *testing.T) *cenario {
	t.Helper()
	clienteRepo := &fakeClienteRepo{porID: map[int64]*entity.Cliente{
		7: {ID: 7, AsaasID: "cus_007", Nome: "João", CpfCnpj: "52998224725"},
		8: {ID: 8, Nome: "Sem Asaas"},
	}}
	repos := &memVendaRepos{}
	tx := &fakeTxRunner{repos: repos}
	gateway := &fakeGateway{
		installment: "ins_123",
		parcelas: []asaas.Cobranca{
			{ID: "pay_2", DueDate: "2099-11-10", Value: decimal.RequireFromString("100.00"), Status: "PENDING", BillingType: "BOLETO"},
			{ID: "pay_1", DueDate: "2099-10-10", Value: decimal.RequireFromString("100.00"), Status: "PENDING", BillingType: "BOLETO"},
		},
	}
	fotos := &fakeFotos{}
	uc := vendas.NewUseCase(clienteRepo, repos, tx, gateway, fotos, time.Second, testLogger())
	return &cenario{uc: uc, gateway: gateway, repos: repos, tx: tx, fotos: fotos}
}

func requisicaoValida() dto.VendaRequest {
	return dto.VendaRequest{
		ClienteID:      "7",
		Valor:          "200.00",
		Parcelas:       "2",
		DataVencimento: "10/10/2099",
		Descricao:      "Venda de produtos",
		NumeroFicha:    "42",
		VendedorID:     "3",
		TipoVenda:      "parcelado",
		RotaID:         "1",
	}
}

func fotoFicha() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "ficha.jpg"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validação
// ──────────────────────────────────────────────────────────────────────────────

func TestCadastrarVenda_Validacao(t *testing.T) {
	casos := []struct {
		nome     string
		mod      func(r *dto.VendaRequest)
		semFoto  bool
		mensagem string
	}{
		{nome: "sem cliente", mod: func(r *dto.VendaRequest) { r.ClienteID = "" }, mensagem: "obrigatórios"},
		{nome: "sem foto", mod: func(r *dto.VendaRequest) {}, semFoto: true, mensagem: "obrigatórios"},
		{nome: "tipo de venda errado", mod: func(r *dto.VendaRequest) { r.TipoVenda = "avista" }, mensagem: "parcelado"},
		{nome: "valor negativo", mod: func(r *dto.VendaRequest) { r.Valor = "-10" }, mensagem: "Valor"},
		{nome: "valor não numérico", mod: func(r *dto.VendaRequest) { r.Valor = "abc" }, mensagem: "Valor"},
		{nome: "zero parcelas", mod: func(r *dto.VendaRequest) { r.Parcelas = "0" }, mensagem: "parcelas"},
		{nome: "61 parcelas", mod: func(r *dto.VendaRequest) { r.Parcelas = "61" }, mensagem: "parcelas"},
		{nome: "data em formato ISO", mod: func(r *dto.VendaRequest) { r.DataVencimento = "2099-10-10" }, mensagem: "Data"},
		{nome: "data no passado", mod: func(r *dto.VendaRequest) { r.DataVencimento = "01/01/2020" }, mensagem: "passado"},
	}

	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			c := novoCenario(t)
			req := requisicaoValida()
			tc.mod(&req)
			foto := fotoFicha()
			if tc.semFoto {
				foto = nil
			}

			_, err := c.uc.Cadastrar(context.Background(), req, foto)

			var ev *vendas.ErroValidacao
			require.ErrorAs(t, err, &ev)
			assert.Contains(t, ev.Mensagem, tc.mensagem)
			assert.Empty(t, c.gateway.criadas, "validação falha antes de qualquer chamada externa")
		})
	}
}

func TestCadastrarVenda_ClienteInexistente(t *testing.T) {
	c := novoCenario(t)
	req := requisicaoValida()
	req.ClienteID = "99"

	_, err := c.uc.Cadastrar(context.Background(), req, fotoFicha())
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}

func TestCadastrarVenda_ClienteSemAsaasID(t *testing.T) {
	c := novoCenario(t)
	req := requisicaoValida()
	req.ClienteID = "8"

	_, err := c.uc.Cadastrar(context.Background(), req, fotoFicha())
	var ev *vendas.ErroValidacao
	require.ErrorAs(t, err, &ev)
	assert.Contains(t, ev.Mensagem, "Asaas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fluxo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestCadastrarVenda_FluxoCompleto(t *testing.T) {
	c := novoCenario(t)

	res, err := c.uc.Cadastrar(context.Background(), requisicaoValida(), fotoFicha())
	require.NoError(t, err)
	require.True(t, res.Sucesso)

	// Payload enviado ao provedor: boleto, referência da ficha e valor da
	// parcela igual ao total dividido pelo número de parcelas.
	require.Len(t, c.gateway.criadas, 1)
	nova := c.gateway.criadas[0]
	assert.Equal(t, "cus_007", nova.Customer)
	assert.Equal(t, "BOLETO", nova.BillingType)
	assert.Equal(t, "FICHA-42", nova.ExternalReference)
	assert.Equal(t, "2099-10-10", nova.DueDate)
	assert.Equal(t, 2, nova.InstallmentCount)
	require.NotNil(t, nova.InstallmentValue)
	assert.True(t, nova.InstallmentValue.Equal(decimal.RequireFromString("100.00")))

	// Espelho local: um parcelamento e as duas parcelas, numeradas na ordem
	// de vencimento.
	require.Len(t, c.repos.parcelamentos, 1)
	plano := c.repos.parcelamentos[0]
	assert.Equal(t, "ins_123", plano.AsaasID)
	assert.Equal(t, 2, plano.NumeroParcelas)
	assert.Equal(t, "cus_007", plano.ClienteAsaasID)

	require.Len(t, c.repos.cobrancas, 2)
	assert.Equal(t, "pay_1", c.repos.cobrancas[0].AsaasID, "parcelas ordenadas por vencimento")
	assert.Equal(t, 1, c.repos.cobrancas[0].NumeroParcela)
	assert.Equal(t, "pay_2", c.repos.cobrancas[1].AsaasID)
	assert.Equal(t, 2, c.repos.cobrancas[1].NumeroParcela)

	assert.Equal(t, "ins_123", res.Venda.AsaasInstallmentID)
	assert.Len(t, res.Venda.Parcelas, 2)
	assert.Equal(t, []string{"fichas/ficha_42.jpg"}, c.fotos.salvas)
	assert.Equal(t, "/uploads/fichas/ficha_42.jpg", res.Venda.FotoFichaURL)
}

func TestCadastrarVenda_ErroNoProvedor(t *testing.T) {
	c := novoCenario(t)
	c.gateway.erroCreate = errors.New("api indisponível")

	_, err := c.uc.Cadastrar(context.Background(), requisicaoValida(), fotoFicha())
	var ev *vendas.ErroValidacao
	require.ErrorAs(t, err, &ev)
	assert.Empty(t, c.repos.parcelamentos, "nada gravado localmente")
	assert.Empty(t, c.fotos.salvas, "foto não salva quando o provedor falha")
}

// Falha na gravação local: a transação é desfeita, a foto removida e a venda
// remota permanece para reconciliação posterior via sync.
func TestCadastrarVenda_FalhaLocalMantemVendaRemota(t *testing.T) {
	c := novoCenario(t)
	c.repos.erroCobranca = errors.New("violação de constraint")

	_, err := c.uc.Cadastrar(context.Background(), requisicaoValida(), fotoFicha())
	require.Error(t, err)

	assert.True(t, c.tx.rollback, "transação desfeita")
	assert.Empty(t, c.repos.cobrancas)
	assert.Len(t, c.gateway.criadas, 1, "venda remota não é desfeita")
	assert.Equal(t, []string{"fichas/ficha_42.jpg"}, c.fotos.removidas)
}

// Resposta sem installment (parcela única): o plano local usa o id do
// payment e a única parcela é a própria cobrança criada.
func TestCadastrarVenda_SemInstallmentUsaPaymentID(t *testing.T) {
	c := novoCenario(t)
	c.gateway.installment = ""

	req := requisicaoValida()
	req.Parcelas = "1"
	req.Valor = "100.00"

	res, err := c.uc.Cadastrar(context.Background(), req, fotoFicha())
	require.NoError(t, err)

	require.Len(t, c.repos.parcelamentos, 1)
	assert.Equal(t, "pay_primeira", c.repos.parcelamentos[0].AsaasID)
	require.Len(t, c.repos.cobrancas, 1)
	assert.Equal(t, "pay_primeira", res.Venda.AsaasInstallmentID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Carnê PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestCarnePDF_StreamDoProvedor(t *testing.T) {
	c := novoCenario(t)
	c.repos.parcelamentos = append(c.repos.parcelamentos, &entity.Parcelamento{ID: 1, AsaasID: "ins_123"})
	c.gateway.pdf = "%PDF-1.4 conteudo"

	rc, err := c.uc.CarnePDF(context.Background(), "ins_123")
	require.NoError(t, err)
	defer rc.Close()

	corpo, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 conteudo", string(corpo))
	assert.Equal(t, []string{"ins_123"}, c.gateway.pdfChamadas)
}

func TestCarnePDF_ParcelamentoInexistente(t *testing.T) {
	c := novoCenario(t)

	_, err := c.uc.CarnePDF(context.Background(), "ins_nao_existe")
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
	assert.Empty(t, c.gateway.pdfChamadas, "sem chamada externa quando o plano não existe")
}

func TestCarnePDF_404DoProvedorViraNaoEncontrado(t *testing.T) {
	c := novoCenario(t)
	c.repos.parcelamentos = append(c.repos.parcelamentos, &entity.Parcelamento{ID: 1, AsaasID: "ins_123"})
	c.gateway.erroPDF = &asaas.APIError{StatusCode: 404}

	_, err := c.uc.CarnePDF(context.Background(), "ins_123")
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}
