package dto

// PageRequest paginação para listados.
type PageRequest struct {
	Limite int `query:"limite"`
	Pagina int `query:"pagina"`
}

// DefaultPage aplica valores padrão e o teto de 500 por página.
func (p *PageRequest) DefaultPage() {
	if p.Limite <= 0 {
		p.Limite = 100
	}
	if p.Limite > 500 {
		p.Limite = 500
	}
	if p.Pagina < 1 {
		p.Pagina = 1
	}
}

// Offset converte página em deslocamento.
func (p *PageRequest) Offset() int {
	return (p.Pagina - 1) * p.Limite
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Sucesso  bool   `json:"sucesso"`
	Mensagem string `json:"mensagem"`
}

// MensagemResponse corpo genérico de sucesso.
type MensagemResponse struct {
	Sucesso  bool   `json:"sucesso"`
	Mensagem string `json:"mensagem"`
}
