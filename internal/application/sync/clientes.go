// Package sync implementa a sincronização do espelho local com o Asaas:
// paginação serial, upsert idempotente por asaas_id, contadores de progresso,
// cancelamento cooperativo e reconciliação de exclusões para clientes.
package sync

import (
	"context"
	"sync/atomic"

	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

const pageSizeClientes = 100

// ClienteAPI é a fatia do cliente Asaas usada pela sincronização de clientes.
type ClienteAPI interface {
	ListClientes(ctx context.Context, offset, limit int) (*asaas.Pagina[asaas.Cliente], error)
}

// ClienteSyncer sincroniza customers do Asaas para a tabela clientes.
// Uma instância admite no máximo uma execução por vez.
type ClienteSyncer struct {
	api   ClienteAPI
	repo  repository.ClienteRepository
	sleep Sleeper
	log   *logger.Logger

	emExecucao atomic.Bool
}

// NewClienteSyncer constrói o sincronizador de clientes.
func NewClienteSyncer(api ClienteAPI, repo repository.ClienteRepository, sleep Sleeper, log *logger.Logger) *ClienteSyncer {
	return &ClienteSyncer{api: api, repo: repo, sleep: sleep, log: log.Componente("sync-clientes")}
}

// Run executa uma sincronização completa de clientes. Devolve
// domain.ErrSyncEmAndamento quando já existe execução em curso, sem tocar em
// contadores nem disparar chamadas externas.
//
// A reconciliação (soft-delete de clientes locais ausentes da enumeração
// remota) só roda quando o percurso terminou completo, sem erro nem
// cancelamento; um conjunto "visto" parcial nunca desativa ninguém.
func (s *ClienteSyncer) Run(ctx context.Context) (*Resultado, error) {
	if !s.emExecucao.CompareAndSwap(false, true) {
		return nil, domain.ErrSyncEmAndamento
	}
	defer s.emExecucao.Store(false)

	s.log.Info().Msg("iniciando sincronização de clientes")
	res := &Resultado{}
	vistos := make(map[string]struct{})

	completo, err := percorrerPaginas(ctx, s.api.ListClientes, pageSizeClientes, s.sleep, s.log,
		func(ctx context.Context, item asaas.Cliente) error {
			cliente := MapCliente(item)
			id, err := s.repo.FindIDByAsaasID(ctx, cliente.AsaasID)
			if err != nil {
				return err
			}
			if id == 0 {
				if _, err := s.repo.Create(ctx, cliente); err != nil {
					return err
				}
				res.Novos++
			} else {
				if err := s.repo.UpdateByAsaasID(ctx, cliente); err != nil {
					return err
				}
				res.Atualizados++
			}
			vistos[cliente.AsaasID] = struct{}{}
			res.Processados++
			return nil
		})
	if err != nil {
		s.log.Error().Err(err).Int("processados", res.Processados).Msg("sincronização de clientes falhou")
		return res, err
	}
	if !completo {
		res.Cancelado = true
		s.log.Warn().Int("processados", res.Processados).Msg("sincronização de clientes cancelada")
		return res, nil
	}

	ativos, err := s.repo.ListAtivosAsaasIDs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reconciliação: falha ao listar clientes ativos")
		return res, err
	}
	for _, asaasID := range ativos {
		if ctx.Err() != nil {
			res.Cancelado = true
			return res, nil
		}
		if _, ok := vistos[asaasID]; ok {
			continue
		}
		if err := s.repo.SoftDeleteByAsaasID(ctx, asaasID); err != nil {
			return res, err
		}
		s.log.Info().Str("asaas_id", asaasID).Msg("cliente desativado na reconciliação")
		res.Desativados++
	}

	s.log.Info().
		Int("total", res.Processados).
		Int("novos", res.Novos).
		Int("atualizados", res.Atualizados).
		Int("desativados", res.Desativados).
		Msg("sincronização de clientes concluída")
	return res, nil
}
