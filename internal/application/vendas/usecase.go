// Package vendas implementa a venda parcelada: cria o plano no Asaas e grava
// parcelamento e cobranças locais em uma única transação.
package vendas

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

// TxRunner executa o bloco de persistência da venda em uma transação.
type TxRunner interface {
	RunVenda(ctx context.Context, fn func(
		parcRepo repository.ParcelamentoRepository,
		cobRepo repository.CobrancaRepository,
	) error) error
}

// AsaasGateway operações de payment/installment usadas pela venda.
type AsaasGateway interface {
	CreateCobranca(ctx context.Context, nova asaas.NovaCobranca) (*asaas.Cobranca, error)
	ListCobrancasDoParcelamento(ctx context.Context, installmentID string, limit int) (*asaas.Pagina[asaas.Cobranca], error)
	PaymentBook(ctx context.Context, installmentID string) (io.ReadCloser, error)
}

// FotoStorage guarda e remove fotos de ficha.
type FotoStorage interface {
	Save(fh *multipart.FileHeader, subdir, nomeBase string) (string, error)
	Remove(relativo string) error
}

// ErroValidacao falha de validação com mensagem própria para o cliente HTTP.
type ErroValidacao struct {
	Mensagem string
}

func (e *ErroValidacao) Error() string { return e.Mensagem }

// UseCase casos de uso de vendas.
type UseCase struct {
	clienteRepo repository.ClienteRepository
	parcRepo    repository.ParcelamentoRepository
	tx          TxRunner
	gateway     AsaasGateway
	fotos       FotoStorage
	timeout     time.Duration
	log         *logger.Logger
	agora       func() time.Time
}

// NewUseCase constrói o caso de uso. timeout limita cada chamada ao Asaas.
func NewUseCase(clienteRepo repository.ClienteRepository, parcRepo repository.ParcelamentoRepository, tx TxRunner, gateway AsaasGateway, fotos FotoStorage, timeout time.Duration, log *logger.Logger) *UseCase {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &UseCase{
		clienteRepo: clienteRepo,
		parcRepo:    parcRepo,
		tx:          tx,
		gateway:     gateway,
		fotos:       fotos,
		timeout:     timeout,
		log:         log,
		agora:       time.Now,
	}
}

type vendaValidada struct {
	clienteID  int64
	valor      decimal.Decimal
	parcelas   int
	vencimento time.Time
	vendedorID int64
	rotaID     int64
}

// validar aplica as regras do formulário. Data no formato dd/mm/aaaa, nunca
// no passado; parcelas entre 1 e 60; valor positivo.
func (uc *UseCase) validar(in dto.VendaRequest, foto *multipart.FileHeader) (*vendaValidada, error) {
	if in.ClienteID == "" || in.Valor == "" || in.Parcelas == "" || in.DataVencimento == "" ||
		in.Descricao == "" || in.NumeroFicha == "" || in.VendedorID == "" || in.TipoVenda == "" ||
		in.RotaID == "" || foto == nil {
		return nil, &ErroValidacao{Mensagem: "Campos obrigatórios faltando"}
	}
	if in.TipoVenda != "parcelado" {
		return nil, &ErroValidacao{Mensagem: "Tipo de venda inválido. Use: parcelado"}
	}

	valor, err := decimal.NewFromString(in.Valor)
	if err != nil || !valor.IsPositive() {
		return nil, &ErroValidacao{Mensagem: "Valor da venda inválido"}
	}

	parcelas, err := strconv.Atoi(in.Parcelas)
	if err != nil || parcelas < 1 || parcelas > 60 {
		return nil, &ErroValidacao{Mensagem: "Número de parcelas deve ser entre 1 e 60"}
	}

	vencimento, err := time.ParseInLocation("02/01/2006", in.DataVencimento, time.Local)
	if err != nil {
		return nil, &ErroValidacao{Mensagem: "Data de vencimento inválida"}
	}
	hoje := uc.agora()
	hoje = time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.Local)
	if vencimento.Before(hoje) {
		return nil, &ErroValidacao{Mensagem: "Data de vencimento não pode ser no passado"}
	}

	clienteID, err := strconv.ParseInt(in.ClienteID, 10, 64)
	if err != nil {
		return nil, &ErroValidacao{Mensagem: "Cliente inválido"}
	}
	vendedorID, _ := strconv.ParseInt(in.VendedorID, 10, 64)
	rotaID, _ := strconv.ParseInt(in.RotaID, 10, 64)

	return &vendaValidada{
		clienteID:  clienteID,
		valor:      valor,
		parcelas:   parcelas,
		vencimento: vencimento,
		vendedorID: vendedorID,
		rotaID:     rotaID,
	}, nil
}

// Cadastrar executa o fluxo da venda parcelada: valida, localiza o cliente,
// cria o plano no Asaas, busca as parcelas geradas e persiste tudo em uma
// transação. A venda remota permanece mesmo quando a gravação local falha; o
// erro fica registrado para conciliação posterior via sync.
func (uc *UseCase) Cadastrar(ctx context.Context, in dto.VendaRequest, foto *multipart.FileHeader) (*dto.VendaResponse, error) {
	v, err := uc.validar(in, foto)
	if err != nil {
		return nil, err
	}

	cliente, err := uc.clienteRepo.GetByID(ctx, v.clienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if cliente.AsaasID == "" {
		return nil, &ErroValidacao{Mensagem: "Cliente não possui ID do Asaas"}
	}

	valorParcela := v.valor.DivRound(decimal.NewFromInt(int64(v.parcelas)), 2)
	vencISO := v.vencimento.Format("2006-01-02")

	remotoCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	criada, err := uc.gateway.CreateCobranca(remotoCtx, asaas.NovaCobranca{
		Customer:             cliente.AsaasID,
		BillingType:          entity.FormaBoleto,
		Value:                v.valor,
		DueDate:              vencISO,
		InstallmentCount:     v.parcelas,
		InstallmentValue:     &valorParcela,
		Description:          in.Descricao,
		ExternalReference:    "FICHA-" + in.NumeroFicha,
		NotificationDisabled: true,
	})
	if err != nil {
		return nil, &ErroValidacao{Mensagem: "Erro ao criar parcelamento no Asaas: " + err.Error()}
	}

	installmentID := criada.Installment
	uc.log.Info().Str("asaas_id", criada.ID).Str("installment", installmentID).Msg("parcelamento criado no Asaas")

	// Parcelas individuais geradas pelo provedor, ordenadas por vencimento.
	var parcelas []asaas.Cobranca
	if installmentID != "" {
		page, err := uc.gateway.ListCobrancasDoParcelamento(remotoCtx, installmentID, 100)
		if err != nil {
			uc.log.Warn().Err(err).Msg("falha ao buscar parcelas do Asaas")
		} else {
			parcelas = page.Data
			sort.Slice(parcelas, func(i, j int) bool { return parcelas[i].DueDate < parcelas[j].DueDate })
		}
	} else {
		parcelas = []asaas.Cobranca{*criada}
	}

	fotoRel, err := uc.fotos.Save(foto, "fichas", "ficha_"+in.NumeroFicha)
	if err != nil {
		return nil, &ErroValidacao{Mensagem: err.Error()}
	}
	fotoURL := "/uploads/" + fotoRel

	planoAsaasID := installmentID
	if planoAsaasID == "" {
		planoAsaasID = criada.ID
	}
	hojeISO := uc.agora().Format("2006-01-02")

	var parcelamentoID int64
	itens := make([]dto.ParcelaVenda, 0, len(parcelas))

	err = uc.tx.RunVenda(ctx, func(parcRepo repository.ParcelamentoRepository, cobRepo repository.CobrancaRepository) error {
		id, err := parcRepo.Create(ctx, &entity.Parcelamento{
			AsaasID:          planoAsaasID,
			Valor:            v.valor,
			ValorParcela:     valorParcela,
			NumeroParcelas:   v.parcelas,
			FormaPagamento:   entity.FormaBoleto,
			Descricao:        in.Descricao,
			ClienteAsaasID:   cliente.AsaasID,
			DataCriacaoAsaas: hojeISO,
		})
		if err != nil {
			return err
		}
		parcelamentoID = id

		for i, p := range parcelas {
			status := p.Status
			if status == "" {
				status = entity.StatusPendente
			}
			forma := p.BillingType
			if forma == "" {
				forma = entity.FormaBoleto
			}
			descricao := p.Description
			if descricao == "" {
				descricao = in.Descricao
			}
			if _, err := cobRepo.Create(ctx, &entity.Cobranca{
				AsaasID:           p.ID,
				Valor:             p.Value,
				Descricao:         descricao,
				FormaPagamento:    forma,
				Status:            status,
				DataVencimento:    p.DueDate,
				DataCriacaoAsaas:  hojeISO,
				ClienteAsaasID:    cliente.AsaasID,
				ParcelamentoID:    installmentID,
				NumeroParcela:     i + 1,
				ReferenciaExterna: p.ExternalReference,
				NossoNumero:       p.NossoNumero,
				URLBoleto:         p.BankSlipURL,
				URLFatura:         p.InvoiceURL,
			}); err != nil {
				return err
			}
			itens = append(itens, dto.ParcelaVenda{
				Numero:         i + 1,
				Valor:          p.Value,
				DataVencimento: p.DueDate,
				AsaasPaymentID: p.ID,
				Status:         status,
				LinkBoleto:     p.BankSlipURL,
				LinkPix:        p.InvoiceURL,
			})
		}
		return nil
	})
	if err != nil {
		// A venda existe no Asaas; o sync reconstrói o espelho local.
		uc.log.Error().Err(err).Str("installment", planoAsaasID).Msg("venda criada no Asaas mas não gravada localmente")
		if rmErr := uc.fotos.Remove(fotoRel); rmErr != nil {
			uc.log.Warn().Err(rmErr).Msg("falha ao remover foto da ficha")
		}
		return nil, err
	}

	uc.log.Info().Int64("id", parcelamentoID).Int("parcelas", len(itens)).Msg("venda parcelada cadastrada")
	return &dto.VendaResponse{
		Sucesso:  true,
		Mensagem: "Venda parcelada cadastrada com sucesso",
		VendaID:  parcelamentoID,
		Venda: dto.VendaDetalhe{
			ID:                     parcelamentoID,
			ClienteID:              cliente.ID,
			ClienteNome:            cliente.Nome,
			ClienteCPF:             cliente.CpfCnpj,
			VendedorID:             v.vendedorID,
			RotaID:                 v.rotaID,
			TipoVenda:              in.TipoVenda,
			ValorTotal:             v.valor,
			NumeroParcelas:         v.parcelas,
			Descricao:              in.Descricao,
			NumeroFicha:            in.NumeroFicha,
			FotoFichaURL:           fotoURL,
			DataVencimentoPrimeira: vencISO,
			AsaasInstallmentID:     planoAsaasID,
			Parcelas:               itens,
		},
	}, nil
}

// CarnePDF devolve o stream do PDF do carnê do parcelamento local informado.
func (uc *UseCase) CarnePDF(ctx context.Context, id string) (io.ReadCloser, error) {
	parcelamento, err := uc.parcRepo.GetByIDOrAsaasID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parcelamento == nil {
		return nil, domain.ErrNaoEncontrado
	}

	// O cancel só dispara quando o chamador fecha o stream.
	remotoCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	pdf, err := uc.gateway.PaymentBook(remotoCtx, parcelamento.AsaasID)
	if err != nil {
		cancel()
		var apiErr *asaas.APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return nil, domain.ErrNaoEncontrado
		}
		return nil, err
	}
	return &streamComCancel{ReadCloser: pdf, cancel: cancel}, nil
}

type streamComCancel struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (s *streamComCancel) Close() error {
	err := s.ReadCloser.Close()
	s.cancel()
	return err
}
