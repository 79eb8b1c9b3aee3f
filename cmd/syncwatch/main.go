// Comando syncwatch executa a sincronização de clientes em intervalos fixos.
// Útil para manter o espelho local atualizado sem depender de chamadas manuais
// ao endpoint de sync. Encerra com SIGINT/SIGTERM, cancelando a passada em curso.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrosystemapp/agroserver-api/internal/application/sync"
	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/postgres"
	"github.com/agrosystemapp/agroserver-api/pkg/config"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

const intervaloPadrao = 60 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	}).Componente("syncwatch")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	client := asaas.NewClient(cfg.Asaas.BaseURL, cfg.Asaas.APIKey)
	syncer := sync.NewClienteSyncer(client, postgres.NewClienteRepository(pool), sync.NewSleeper(), log)

	log.Info().Dur("intervalo", intervaloPadrao).Msg("observador de sincronização iniciado")

	ticker := time.NewTicker(intervaloPadrao)
	defer ticker.Stop()

	// Primeira passada imediata; as seguintes a cada tick.
	for {
		executar(ctx, syncer, log)

		select {
		case <-ctx.Done():
			log.Info().Msg("sinal recebido, encerrando observador")
			return
		case <-ticker.C:
		}
	}
}

func executar(ctx context.Context, syncer *sync.ClienteSyncer, log *logger.Logger) {
	inicio := time.Now()
	res, err := syncer.Run(ctx)
	switch {
	case errors.Is(err, domain.ErrSyncEmAndamento):
		log.Warn().Msg("sincronização já em andamento, pulando passada")
	case err != nil:
		log.Error().Err(err).
			Int("processados", res.Processados).
			Msg("sincronização de clientes falhou")
	default:
		log.Info().
			Int("processados", res.Processados).
			Int("novos", res.Novos).
			Int("atualizados", res.Atualizados).
			Int("desativados", res.Desativados).
			Bool("cancelado", res.Cancelado).
			Dur("duração", time.Since(inicio)).
			Msg("sincronização de clientes concluída")
	}
}
