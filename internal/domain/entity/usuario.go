package entity

import "time"

// Tipos de usuário da aplicação.
const (
	TipoVendedor      = "vendedor"
	TipoAdministrador = "administrador"
)

// Usuario é uma conta local da API (não existe no Asaas).
type Usuario struct {
	ID          string // uuid
	Nome        string
	Email       string
	SenhaHash   string
	TipoUsuario string // vendedor | administrador
	Ativo       bool
	CriadoEm    time.Time
	UltimoLogin *time.Time
}
