package sync

import (
	"context"
	"sync/atomic"

	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

// TudoSyncer encadeia as três sincronizações na ordem fixa
// clientes → parcelamentos → cobranças, com pausa de 10s entre as etapas.
// Erro ou cancelamento em uma etapa aborta as seguintes.
type TudoSyncer struct {
	clientes      *ClienteSyncer
	parcelamentos *ParcelamentoSyncer
	cobrancas     *CobrancaSyncer
	sleep         Sleeper
	log           *logger.Logger

	emExecucao atomic.Bool
}

// NewTudoSyncer constrói o encadeador.
func NewTudoSyncer(clientes *ClienteSyncer, parcelamentos *ParcelamentoSyncer, cobrancas *CobrancaSyncer, sleep Sleeper, log *logger.Logger) *TudoSyncer {
	return &TudoSyncer{
		clientes:      clientes,
		parcelamentos: parcelamentos,
		cobrancas:     cobrancas,
		sleep:         sleep,
		log:           log.Componente("sync-tudo"),
	}
}

// Run executa a sincronização completa. Devolve domain.ErrSyncEmAndamento
// quando já existe uma execução completa em curso; cada etapa ainda segura o
// próprio guard, então um sync individual disparado em paralelo também é
// rejeitado com o mesmo erro.
func (s *TudoSyncer) Run(ctx context.Context) (*ResultadoTudo, error) {
	if !s.emExecucao.CompareAndSwap(false, true) {
		return nil, domain.ErrSyncEmAndamento
	}
	defer s.emExecucao.Store(false)

	s.log.Info().Msg("iniciando sincronização completa")
	out := &ResultadoTudo{}

	res, err := s.clientes.Run(ctx)
	out.Clientes = res
	if err != nil {
		return out, err
	}
	if res.Cancelado {
		return out, nil
	}
	if err := s.sleep.Sleep(ctx, delayEtapa); err != nil {
		return out, nil
	}

	res, err = s.parcelamentos.Run(ctx)
	out.Parcelamentos = res
	if err != nil {
		return out, err
	}
	if res.Cancelado {
		return out, nil
	}
	if err := s.sleep.Sleep(ctx, delayEtapa); err != nil {
		return out, nil
	}

	res, err = s.cobrancas.Run(ctx)
	out.Cobrancas = res
	if err != nil {
		return out, err
	}

	s.log.Info().Msg("sincronização completa concluída")
	return out, nil
}
