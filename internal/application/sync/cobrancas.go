package sync

import (
	"context"
	"sync/atomic"

	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

const pageSizeCobrancas = 50

// CobrancaAPI é a fatia do cliente Asaas usada pela sincronização de
// cobranças.
type CobrancaAPI interface {
	ListCobrancas(ctx context.Context, offset, limit int) (*asaas.Pagina[asaas.Cobranca], error)
}

// CobrancaSyncer sincroniza payments do Asaas para a tabela cobrancas.
type CobrancaSyncer struct {
	api   CobrancaAPI
	repo  repository.CobrancaRepository
	sleep Sleeper
	log   *logger.Logger

	emExecucao atomic.Bool
}

// NewCobrancaSyncer constrói o sincronizador de cobranças.
func NewCobrancaSyncer(api CobrancaAPI, repo repository.CobrancaRepository, sleep Sleeper, log *logger.Logger) *CobrancaSyncer {
	return &CobrancaSyncer{api: api, repo: repo, sleep: sleep, log: log.Componente("sync-cobrancas")}
}

// Run executa uma sincronização completa de cobranças. Devolve
// domain.ErrSyncEmAndamento quando já existe execução em curso.
func (s *CobrancaSyncer) Run(ctx context.Context) (*Resultado, error) {
	if !s.emExecucao.CompareAndSwap(false, true) {
		return nil, domain.ErrSyncEmAndamento
	}
	defer s.emExecucao.Store(false)

	s.log.Info().Msg("iniciando sincronização de cobranças")
	res := &Resultado{}

	completo, err := percorrerPaginas(ctx, s.api.ListCobrancas, pageSizeCobrancas, s.sleep, s.log,
		func(ctx context.Context, item asaas.Cobranca) error {
			c := MapCobranca(item)
			id, err := s.repo.FindIDByAsaasID(ctx, c.AsaasID)
			if err != nil {
				return err
			}
			if id == 0 {
				if _, err := s.repo.Create(ctx, c); err != nil {
					return err
				}
				res.Novos++
			} else {
				if err := s.repo.UpdateByAsaasID(ctx, c); err != nil {
					return err
				}
				res.Atualizados++
			}
			res.Processados++
			return nil
		})
	if err != nil {
		s.log.Error().Err(err).Int("processados", res.Processados).Msg("sincronização de cobranças falhou")
		return res, err
	}
	if !completo {
		res.Cancelado = true
		s.log.Warn().Int("processados", res.Processados).Msg("sincronização de cobranças cancelada")
		return res, nil
	}

	s.log.Info().
		Int("total", res.Processados).
		Int("novos", res.Novos).
		Int("atualizados", res.Atualizados).
		Msg("sincronização de cobranças concluída")
	return res, nil
}
