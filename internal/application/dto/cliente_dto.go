package dto

import "time"

// CadastroClienteRequest campos do formulário multipart de cadastro manual.
// A foto do documento chega como arquivo separado.
type CadastroClienteRequest struct {
	Nome         string `form:"nome"`
	Documento    string `form:"documento"`
	Telefone     string `form:"telefone"`
	Endereco     string `form:"endereco"`
	Verificado   string `form:"verificado"`
	VendedorID   string `form:"vendedorId"`
	VendedorNome string `form:"vendedorNome"`
}

// ClienteResumo projeção do cliente nas respostas de cadastro e conflito.
type ClienteResumo struct {
	ID               int64     `json:"id,omitempty"`
	Nome             string    `json:"nome"`
	Documento        string    `json:"documento"`
	Telefone         string    `json:"telefone"`
	Endereco         string    `json:"endereco,omitempty"`
	Email            string    `json:"email,omitempty"`
	Verificado       bool      `json:"verificado,omitempty"`
	VendedorID       int64     `json:"vendedorId,omitempty"`
	VendedorNome     string    `json:"vendedorNome,omitempty"`
	AsaasCustomerID  string    `json:"asaasCustomerId"`
	FotoDocumentoURL string    `json:"fotoDocumentoUrl,omitempty"`
	CriadoEm         time.Time `json:"criadoEm,omitempty"`
}

// CadastroClienteResponse resposta do cadastro manual.
type CadastroClienteResponse struct {
	Sucesso  bool          `json:"sucesso"`
	Mensagem string        `json:"mensagem"`
	Cliente  ClienteResumo `json:"cliente"`
}

// ListarClientesRequest filtros do listado.
type ListarClientesRequest struct {
	Busca string `query:"busca"`
	Ordem string `query:"ordem"`
	PageRequest
}

// ClienteItem item do listado de clientes.
type ClienteItem struct {
	ID              int64     `json:"id"`
	Nome            string    `json:"nome"`
	CPF             string    `json:"cpf"`
	Telefone        string    `json:"telefone"`
	Email           string    `json:"email"`
	Endereco        string    `json:"endereco"`
	AsaasCustomerID string    `json:"asaasCustomerId"`
	VendedorID      int64     `json:"vendedorId"`
	VendedorNome    string    `json:"vendedorNome"`
	CriadoEm        time.Time `json:"criadoEm"`
	AtualizadoEm    time.Time `json:"atualizadoEm"`
}

// ListarClientesResponse envelope do listado.
type ListarClientesResponse struct {
	Sucesso  bool          `json:"sucesso"`
	Clientes []ClienteItem `json:"clientes"`
	Total    int           `json:"total"`
}
