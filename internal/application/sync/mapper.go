package sync

import (
	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
)

// Mapeamento puro dos registros do Asaas para as entidades locais. Campos
// ausentes viram zero values; país vazio vira "Brasil".

// MapCliente converte um customer do Asaas em Cliente local.
func MapCliente(in asaas.Cliente) *entity.Cliente {
	pais := in.Country
	if pais == "" {
		pais = "Brasil"
	}
	return &entity.Cliente{
		AsaasID:                   in.ID,
		Nome:                      in.Name,
		Email:                     in.Email,
		Telefone:                  in.Phone,
		Celular:                   in.MobilePhone,
		CpfCnpj:                   in.CpfCnpj,
		TipoPessoa:                in.PersonType,
		Estrangeiro:               in.ForeignCustomer,
		Endereco:                  in.Address,
		NumeroEndereco:            in.AddressNumber,
		Complemento:               in.Complement,
		Bairro:                    in.Province,
		CidadeID:                  in.City,
		CidadeNome:                in.CityName,
		Estado:                    in.State,
		Pais:                      pais,
		CEP:                       in.PostalCode,
		EmailsAdicionais:          in.AdditionalEmails,
		ReferenciaExterna:         in.ExternalReference,
		NotificacoesDesabilitadas: in.NotificationDisabled,
		Observacoes:               in.Observations,
		Deletado:                  in.Deleted,
		DataCriacaoAsaas:          in.DateCreated,
	}
}

// MapParcelamento converte um installment do Asaas em Parcelamento local.
func MapParcelamento(in asaas.Parcelamento) *entity.Parcelamento {
	p := &entity.Parcelamento{
		AsaasID:          in.ID,
		Valor:            in.Value,
		ValorLiquido:     in.NetValue,
		ValorParcela:     in.PaymentValue,
		NumeroParcelas:   in.InstallmentCount,
		FormaPagamento:   in.BillingType,
		DataPagamento:    in.PaymentDate,
		Descricao:        in.Description,
		DiaVencimento:    in.ExpirationDay,
		ClienteAsaasID:   in.Customer,
		PaymentLink:      in.PaymentLink,
		CheckoutSession:  in.CheckoutSession,
		URLComprovante:   in.TransactionReceiptURL,
		Deletado:         in.Deleted,
		DataCriacaoAsaas: in.DateCreated,
	}
	if in.CreditCard != nil {
		p.CartaoUltimosDigitos = in.CreditCard.CreditCardNumber
		p.CartaoBandeira = in.CreditCard.CreditCardBrand
		p.CartaoToken = in.CreditCard.CreditCardToken
	}
	return p
}

// MapCobranca converte um payment do Asaas em Cobranca local.
func MapCobranca(in asaas.Cobranca) *entity.Cobranca {
	c := &entity.Cobranca{
		AsaasID:                 in.ID,
		Valor:                   in.Value,
		ValorLiquido:            in.NetValue,
		ValorOriginal:           in.OriginalValue,
		ValorJuros:              in.InterestValue,
		Descricao:               in.Description,
		FormaPagamento:          in.BillingType,
		Status:                  in.Status,
		DataCriacaoAsaas:        in.DateCreated,
		DataVencimento:          in.DueDate,
		DataVencimentoOriginal:  in.OriginalDueDate,
		DataPagamento:           in.PaymentDate,
		DataPagamentoCliente:    in.ClientPaymentDate,
		DataCredito:             in.CreditDate,
		DataCreditoEstimada:     in.EstimatedCreditDate,
		ClienteAsaasID:          in.Customer,
		AssinaturaID:            in.Subscription,
		ParcelamentoID:          in.Installment,
		NumeroParcela:           in.InstallmentNumber,
		CheckoutSession:         in.CheckoutSession,
		PaymentLink:             in.PaymentLink,
		URLFatura:               in.InvoiceURL,
		NumeroFatura:            in.InvoiceNumber,
		ReferenciaExterna:       in.ExternalReference,
		NossoNumero:             in.NossoNumero,
		URLBoleto:               in.BankSlipURL,
		PodePagarAposVencimento: in.CanBePaidAfterDueDate,
		PixTransacaoID:          in.PixTransaction,
		PixQrCodeID:             in.PixQrCodeID,
		URLComprovante:          in.TransactionReceiptURL,
		Deletado:                in.Deleted,
		Antecipado:              in.Anticipated,
		Antecipavel:             in.Anticipable,
		EnvioCorreios:           in.PostalService,

		DiasAposVencimentoParaCancelamento: in.DaysAfterDueDateToRegistrationCancellation,
	}
	if in.CreditCard != nil {
		c.CartaoUltimosDigitos = in.CreditCard.CreditCardNumber
		c.CartaoBandeira = in.CreditCard.CreditCardBrand
		c.CartaoToken = in.CreditCard.CreditCardToken
	}
	if in.Discount != nil {
		c.DescontoValor = in.Discount.Value
		c.DescontoDiasLimite = in.Discount.DueDateLimitDays
		c.DescontoTipo = in.Discount.Type
	}
	if in.Fine != nil {
		c.MultaPercentual = in.Fine.Value
	}
	if in.Interest != nil {
		c.JurosPercentual = in.Interest.Value
	}
	return c
}
