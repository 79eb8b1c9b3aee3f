package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/agrosystemapp/agroserver-api/internal/application/auth"
	"github.com/agrosystemapp/agroserver-api/internal/application/clientes"
	appsync "github.com/agrosystemapp/agroserver-api/internal/application/sync"
	"github.com/agrosystemapp/agroserver-api/internal/application/vendas"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/arquivos"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/postgres"
	httpRouter "github.com/agrosystemapp/agroserver-api/internal/interfaces/http"
	"github.com/agrosystemapp/agroserver-api/pkg/config"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	parcelamentoRepo := postgres.NewParcelamentoRepository(pool)
	cobrancaRepo := postgres.NewCobrancaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	asaasClient := asaas.NewClient(cfg.Asaas.BaseURL, cfg.Asaas.APIKey)
	fotos, err := arquivos.NewStorage(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("diretório de uploads")
	}

	timeout := time.Duration(cfg.Asaas.TimeoutSeconds) * time.Second
	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientesUC := clientes.NewUseCase(clienteRepo, asaasClient, fotos, timeout, log)
	vendasUC := vendas.NewUseCase(clienteRepo, parcelamentoRepo, txRunner, asaasClient, fotos, timeout, log)

	sleeper := appsync.NewSleeper()
	clienteSyncer := appsync.NewClienteSyncer(asaasClient, clienteRepo, sleeper, log)
	parcelamentoSyncer := appsync.NewParcelamentoSyncer(asaasClient, parcelamentoRepo, sleeper, log)
	cobrancaSyncer := appsync.NewCobrancaSyncer(asaasClient, cobrancaRepo, sleeper, log)
	tudoSyncer := appsync.NewTudoSyncer(clienteSyncer, parcelamentoSyncer, cobrancaSyncer, sleeper, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024, // fotos de documentos e fichas
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgroServer API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "degraded",
				"service": cfg.App.Name,
				"banco":   "indisponível",
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "banco": "ok"})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:             authUC,
		ClientesUC:         clientesUC,
		VendasUC:           vendasUC,
		ParcelamentoRepo:   parcelamentoRepo,
		CobrancaRepo:       cobrancaRepo,
		ClienteSyncer:      clienteSyncer,
		ParcelamentoSyncer: parcelamentoSyncer,
		CobrancaSyncer:     cobrancaSyncer,
		TudoSyncer:         tudoSyncer,
		JWTSecret:          cfg.JWT.Secret,
		UploadDir:          fotos.Raiz(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
