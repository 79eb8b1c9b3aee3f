package dto

import "time"

// RegisterRequest cadastro de usuário.
type RegisterRequest struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Senha       string `json:"senha"`
	TipoUsuario string `json:"tipo_usuario"`
}

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// UsuarioResponse usuário sem campos sensíveis.
type UsuarioResponse struct {
	ID          string     `json:"id"`
	Nome        string     `json:"nome"`
	Email       string     `json:"email"`
	TipoUsuario string     `json:"tipo_usuario"`
	Ativo       bool       `json:"ativo"`
	CriadoEm    time.Time  `json:"criado_em"`
	UltimoLogin *time.Time `json:"ultimo_login,omitempty"`
}

// LoginResponse token JWT mais dados do usuário.
type LoginResponse struct {
	Sucesso bool            `json:"sucesso"`
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
