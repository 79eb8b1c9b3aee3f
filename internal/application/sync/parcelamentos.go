package sync

import (
	"context"
	"sync/atomic"

	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

const pageSizeParcelamentos = 50

// ParcelamentoAPI é a fatia do cliente Asaas usada pela sincronização de
// parcelamentos.
type ParcelamentoAPI interface {
	ListParcelamentos(ctx context.Context, offset, limit int) (*asaas.Pagina[asaas.Parcelamento], error)
}

// ParcelamentoSyncer sincroniza installments do Asaas para a tabela
// parcelamentos. Sem reconciliação: a exclusão remota chega pelo campo
// deleted do próprio registro.
type ParcelamentoSyncer struct {
	api   ParcelamentoAPI
	repo  repository.ParcelamentoRepository
	sleep Sleeper
	log   *logger.Logger

	emExecucao atomic.Bool
}

// NewParcelamentoSyncer constrói o sincronizador de parcelamentos.
func NewParcelamentoSyncer(api ParcelamentoAPI, repo repository.ParcelamentoRepository, sleep Sleeper, log *logger.Logger) *ParcelamentoSyncer {
	return &ParcelamentoSyncer{api: api, repo: repo, sleep: sleep, log: log.Componente("sync-parcelamentos")}
}

// Run executa uma sincronização completa de parcelamentos. Devolve
// domain.ErrSyncEmAndamento quando já existe execução em curso.
func (s *ParcelamentoSyncer) Run(ctx context.Context) (*Resultado, error) {
	if !s.emExecucao.CompareAndSwap(false, true) {
		return nil, domain.ErrSyncEmAndamento
	}
	defer s.emExecucao.Store(false)

	s.log.Info().Msg("iniciando sincronização de parcelamentos")
	res := &Resultado{}

	completo, err := percorrerPaginas(ctx, s.api.ListParcelamentos, pageSizeParcelamentos, s.sleep, s.log,
		func(ctx context.Context, item asaas.Parcelamento) error {
			p := MapParcelamento(item)
			id, err := s.repo.FindIDByAsaasID(ctx, p.AsaasID)
			if err != nil {
				return err
			}
			if id == 0 {
				if _, err := s.repo.Create(ctx, p); err != nil {
					return err
				}
				res.Novos++
			} else {
				if err := s.repo.UpdateByAsaasID(ctx, p); err != nil {
					return err
				}
				res.Atualizados++
			}
			res.Processados++
			return nil
		})
	if err != nil {
		s.log.Error().Err(err).Int("processados", res.Processados).Msg("sincronização de parcelamentos falhou")
		return res, err
	}
	if !completo {
		res.Cancelado = true
		s.log.Warn().Int("processados", res.Processados).Msg("sincronização de parcelamentos cancelada")
		return res, nil
	}

	s.log.Info().
		Int("total", res.Processados).
		Int("novos", res.Novos).
		Int("atualizados", res.Atualizados).
		Msg("sincronização de parcelamentos concluída")
	return res, nil
}
