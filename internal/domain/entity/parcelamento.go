package entity

import "github.com/shopspring/decimal"

// Parcelamento é o espelho local de um installment do Asaas.
// ClienteAsaasID referencia o Cliente pela chave do provedor (sem FK).
type Parcelamento struct {
	ID      int64
	AsaasID string

	Valor          decimal.Decimal
	ValorLiquido   decimal.Decimal
	ValorParcela   decimal.Decimal
	NumeroParcelas int
	FormaPagamento string // BOLETO | CREDIT_CARD | PIX
	DataPagamento  string
	Descricao      string
	DiaVencimento  int

	ClienteAsaasID  string
	PaymentLink     string
	CheckoutSession string
	URLComprovante  string

	CartaoUltimosDigitos string
	CartaoBandeira       string
	CartaoToken          string

	Deletado         bool
	DataCriacaoAsaas string
}
