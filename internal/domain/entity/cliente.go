package entity

import "time"

// Cliente é o espelho local de um customer do Asaas, mais os campos do
// cadastro manual (vendedor, verificação, foto do documento).
// AsaasID é a chave natural de junção com o provedor; no máximo uma linha
// ativa (Deletado = false) por AsaasID.
type Cliente struct {
	ID      int64
	AsaasID string

	Nome        string
	Email       string
	Telefone    string
	Celular     string
	CpfCnpj     string
	TipoPessoa  string // FISICA | JURIDICA
	Estrangeiro bool

	Endereco       string
	NumeroEndereco string
	Complemento    string
	Bairro         string
	CidadeID       int64
	CidadeNome     string
	Estado         string
	Pais           string
	CEP            string

	EmailsAdicionais          string
	ReferenciaExterna         string
	NotificacoesDesabilitadas bool
	Observacoes               string

	// Campos do fluxo de cadastro manual (não vêm do Asaas).
	Verificado       bool
	VendedorID       int64
	VendedorNome     string
	FotoDocumentoURL string

	Deletado         bool
	DataCriacaoAsaas string // data no formato do provedor (aaaa-mm-dd)
	CriadoEm         time.Time
	AtualizadoEm     time.Time
}
