package dto

import "github.com/shopspring/decimal"

// VendaRequest campos do formulário multipart de venda parcelada. A foto da
// ficha chega como arquivo separado. DataVencimento no formato dd/mm/aaaa.
type VendaRequest struct {
	ClienteID      string `form:"clienteId"`
	Valor          string `form:"valor"`
	Parcelas       string `form:"parcelas"`
	DataVencimento string `form:"dataVencimento"`
	Descricao      string `form:"descricao"`
	NumeroFicha    string `form:"numeroFicha"`
	VendedorID     string `form:"vendedorId"`
	TipoVenda      string `form:"tipoVenda"`
	RotaID         string `form:"rotaId"`
}

// ParcelaVenda parcela individual na resposta da venda.
type ParcelaVenda struct {
	Numero         int             `json:"numero"`
	Valor          decimal.Decimal `json:"valor"`
	DataVencimento string          `json:"dataVencimento"`
	AsaasPaymentID string          `json:"asaasPaymentId"`
	Status         string          `json:"status"`
	LinkBoleto     string          `json:"linkBoleto,omitempty"`
	LinkPix        string          `json:"linkPix,omitempty"`
}

// VendaDetalhe corpo da venda cadastrada.
type VendaDetalhe struct {
	ID                     int64           `json:"id"`
	ClienteID              int64           `json:"clienteId"`
	ClienteNome            string          `json:"clienteNome"`
	ClienteCPF             string          `json:"clienteCpf"`
	VendedorID             int64           `json:"vendedorId"`
	RotaID                 int64           `json:"rotaId"`
	TipoVenda              string          `json:"tipoVenda"`
	ValorTotal             decimal.Decimal `json:"valorTotal"`
	NumeroParcelas         int             `json:"numeroParcelas"`
	Descricao              string          `json:"descricao"`
	NumeroFicha            string          `json:"numeroFicha"`
	FotoFichaURL           string          `json:"fotoFichaUrl,omitempty"`
	DataVencimentoPrimeira string          `json:"dataVencimentoPrimeira"`
	AsaasInstallmentID     string          `json:"asaasInstallmentId"`
	Parcelas               []ParcelaVenda  `json:"parcelas"`
}

// VendaResponse resposta do cadastro de venda.
type VendaResponse struct {
	Sucesso  bool         `json:"sucesso"`
	Mensagem string       `json:"mensagem"`
	VendaID  int64        `json:"vendaId"`
	Venda    VendaDetalhe `json:"venda"`
}
