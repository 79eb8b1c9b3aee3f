package entity

import "github.com/shopspring/decimal"

// Status de cobrança reportados pelo Asaas. A coluna é texto livre: variantes
// novas do provedor são aceitas sem migração.
const (
	StatusPendente    = "PENDING"
	StatusRecebido    = "RECEIVED"
	StatusConfirmado  = "CONFIRMED"
	StatusVencido     = "OVERDUE"
	StatusEstornado   = "REFUNDED"
	StatusRecebidoEmDinheiro = "RECEIVED_IN_CASH"
	StatusAguardandoEstorno  = "REFUND_REQUESTED"
	StatusChargebackSolicitado = "CHARGEBACK_REQUESTED"
)

// Formas de pagamento do Asaas.
const (
	FormaBoleto       = "BOLETO"
	FormaCartaoCredito = "CREDIT_CARD"
	FormaPix          = "PIX"
)

// Cobranca é o espelho local de um payment do Asaas. Pertence a um Cliente
// (ClienteAsaasID) e opcionalmente a um Parcelamento (ParcelamentoID, chave
// do provedor), com NumeroParcela indicando a posição dentro do plano.
type Cobranca struct {
	ID      int64
	AsaasID string

	Valor         decimal.Decimal
	ValorLiquido  decimal.Decimal
	ValorOriginal decimal.Decimal
	ValorJuros    decimal.Decimal

	Descricao      string
	FormaPagamento string
	Status         string

	DataCriacaoAsaas       string
	DataVencimento         string
	DataVencimentoOriginal string
	DataPagamento          string
	DataPagamentoCliente   string
	DataCredito            string
	DataCreditoEstimada    string

	ClienteAsaasID string
	AssinaturaID   string
	ParcelamentoID string
	NumeroParcela  int

	CheckoutSession   string
	PaymentLink       string
	URLFatura         string
	NumeroFatura      string
	ReferenciaExterna string

	// Boleto
	NossoNumero             string
	URLBoleto               string
	PodePagarAposVencimento bool

	// PIX
	PixTransacaoID string
	PixQrCodeID    string

	// Cartão
	CartaoUltimosDigitos string
	CartaoBandeira       string
	CartaoToken          string

	URLComprovante string

	DescontoValor      decimal.Decimal
	DescontoDiasLimite int
	DescontoTipo       string
	MultaPercentual    decimal.Decimal
	JurosPercentual    decimal.Decimal

	Deletado      bool
	Antecipado    bool
	Antecipavel   bool
	EnvioCorreios bool

	DiasAposVencimentoParaCancelamento int
}
