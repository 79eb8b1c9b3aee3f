package sync_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosystemapp/agroserver-api/internal/application/sync"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
)

func TestMapCliente_TodosOsCampos(t *testing.T) {
	in := asaas.Cliente{
		ID:                   "cus_000001",
		DateCreated:          "2026-01-15",
		Name:                 "Maria da Silva",
		Email:                "maria@exemplo.com",
		Phone:                "6233334444",
		MobilePhone:          "62999998888",
		CpfCnpj:              "52998224725",
		PersonType:           "FISICA",
		Address:              "Rua das Flores",
		AddressNumber:        "123",
		Complement:           "Casa 2",
		Province:             "Centro",
		City:                 5208707,
		CityName:             "Goiânia",
		State:                "GO",
		Country:              "Brasil",
		PostalCode:           "74000-000",
		AdditionalEmails:     "outro@exemplo.com",
		ExternalReference:    "FICHA-42",
		NotificationDisabled: true,
		Observations:         "cliente antigo",
	}

	c := sync.MapCliente(in)

	assert.Equal(t, "cus_000001", c.AsaasID)
	assert.Equal(t, "Maria da Silva", c.Nome)
	assert.Equal(t, "maria@exemplo.com", c.Email)
	assert.Equal(t, "6233334444", c.Telefone)
	assert.Equal(t, "62999998888", c.Celular)
	assert.Equal(t, "52998224725", c.CpfCnpj)
	assert.Equal(t, "FISICA", c.TipoPessoa)
	assert.Equal(t, "Rua das Flores", c.Endereco)
	assert.Equal(t, "123", c.NumeroEndereco)
	assert.Equal(t, "Centro", c.Bairro)
	assert.Equal(t, int64(5208707), c.CidadeID)
	assert.Equal(t, "Goiânia", c.CidadeNome)
	assert.Equal(t, "GO", c.Estado)
	assert.Equal(t, "74000-000", c.CEP)
	assert.Equal(t, "FICHA-42", c.ReferenciaExterna)
	assert.True(t, c.NotificacoesDesabilitadas)
	assert.Equal(t, "2026-01-15", c.DataCriacaoAsaas)
	assert.False(t, c.Deletado)
}

func TestMapCliente_PaisVazioViraBrasil(t *testing.T) {
	c := sync.MapCliente(asaas.Cliente{ID: "cus_a"})
	assert.Equal(t, "Brasil", c.Pais)

	c = sync.MapCliente(asaas.Cliente{ID: "cus_b", Country: "Portugal"})
	assert.Equal(t, "Portugal", c.Pais)
}

func TestMapParcelamento_ComESemCartao(t *testing.T) {
	in := asaas.Parcelamento{
		ID:               "ins_001",
		Value:            decimal.RequireFromString("1200.00"),
		PaymentValue:     decimal.RequireFromString("100.00"),
		InstallmentCount: 12,
		BillingType:      "BOLETO",
		Customer:         "cus_a",
		CreditCard: &asaas.CartaoCredito{
			CreditCardNumber: "8829",
			CreditCardBrand:  "VISA",
		},
	}

	p := sync.MapParcelamento(in)
	assert.Equal(t, "ins_001", p.AsaasID)
	assert.Equal(t, 12, p.NumeroParcelas)
	assert.Equal(t, "cus_a", p.ClienteAsaasID)
	assert.Equal(t, "8829", p.CartaoUltimosDigitos)
	assert.Equal(t, "VISA", p.CartaoBandeira)
	assert.True(t, p.Valor.Equal(decimal.RequireFromString("1200.00")))

	in.CreditCard = nil
	p = sync.MapParcelamento(in)
	assert.Empty(t, p.CartaoUltimosDigitos)
	assert.Empty(t, p.CartaoBandeira)
}

func TestMapCobranca_SubObjetosNulos(t *testing.T) {
	in := asaas.Cobranca{
		ID:          "pay_001",
		Customer:    "cus_a",
		Installment: "ins_001",
		Value:       decimal.RequireFromString("100.00"),
		Status:      "PENDING",
		BillingType: "BOLETO",
		DueDate:     "2026-10-01",
	}

	c := sync.MapCobranca(in)
	require.NotNil(t, c)
	assert.Equal(t, "pay_001", c.AsaasID)
	assert.Equal(t, "ins_001", c.ParcelamentoID)
	assert.Equal(t, "PENDING", c.Status)
	assert.Equal(t, "2026-10-01", c.DataVencimento)
	assert.Empty(t, c.CartaoUltimosDigitos)
	assert.Empty(t, c.DescontoTipo)
	assert.True(t, c.MultaPercentual.IsZero())
	assert.True(t, c.JurosPercentual.IsZero())
}

func TestMapCobranca_SubObjetosPreenchidos(t *testing.T) {
	in := asaas.Cobranca{
		ID:       "pay_002",
		Customer: "cus_a",
		Discount: &asaas.Desconto{
			Value:            decimal.RequireFromString("5.00"),
			DueDateLimitDays: 3,
			Type:             "FIXED",
		},
		Fine:     &asaas.Percentual{Value: decimal.RequireFromString("2.00")},
		Interest: &asaas.Percentual{Value: decimal.RequireFromString("1.00")},
		CreditCard: &asaas.CartaoCredito{
			CreditCardNumber: "4444",
			CreditCardBrand:  "MASTERCARD",
			CreditCardToken:  "tok_abc",
		},
	}

	c := sync.MapCobranca(in)
	assert.True(t, c.DescontoValor.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, 3, c.DescontoDiasLimite)
	assert.Equal(t, "FIXED", c.DescontoTipo)
	assert.True(t, c.MultaPercentual.Equal(decimal.RequireFromString("2.00")))
	assert.True(t, c.JurosPercentual.Equal(decimal.RequireFromString("1.00")))
	assert.Equal(t, "4444", c.CartaoUltimosDigitos)
	assert.Equal(t, "MASTERCARD", c.CartaoBandeira)
	assert.Equal(t, "tok_abc", c.CartaoToken)
}
