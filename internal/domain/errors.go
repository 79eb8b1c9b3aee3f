package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNaoEncontrado        = errors.New("recurso não encontrado")
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
	ErrEmailJaCadastrado    = errors.New("email já cadastrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrDuplicado            = errors.New("recurso duplicado")
	ErrNaoAutorizado        = errors.New("não autorizado")
	ErrAcessoNegado         = errors.New("acesso negado")
	ErrUsuarioDesativado    = errors.New("usuário desativado")

	// ErrSyncEmAndamento é o sinal de single-flight: já existe uma
	// sincronização em execução para a entidade; a chamada não alterou nada.
	ErrSyncEmAndamento = errors.New("sincronização já em andamento")
)
