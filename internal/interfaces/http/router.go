// Package http registra as rotas Fiber da API.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrosystemapp/agroserver-api/internal/application/auth"
	"github.com/agrosystemapp/agroserver-api/internal/application/clientes"
	appsync "github.com/agrosystemapp/agroserver-api/internal/application/sync"
	"github.com/agrosystemapp/agroserver-api/internal/application/vendas"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ClientesUC *clientes.UseCase
	VendasUC   *vendas.UseCase

	ParcelamentoRepo repository.ParcelamentoRepository
	CobrancaRepo     repository.CobrancaRepository

	ClienteSyncer      *appsync.ClienteSyncer
	ParcelamentoSyncer *appsync.ParcelamentoSyncer
	CobrancaSyncer     *appsync.CobrancaSyncer
	TudoSyncer         *appsync.TudoSyncer

	JWTSecret string
	UploadDir string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	// Fotos de documentos e fichas.
	app.Static("/uploads", deps.UploadDir)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	clientesGroup := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClientesUC, deps.ClienteSyncer)
	clientesGroup.Post("/", clienteHandler.Create)
	clientesGroup.Get("/", clienteHandler.List)
	clientesGroup.Post("/sync", clienteHandler.Sync)
	clientesGroup.Get("/:id", clienteHandler.GetByID)

	parcelamentosGroup := protected.Group("/parcelamentos")
	parcelamentoHandler := NewParcelamentoHandler(deps.ParcelamentoRepo, deps.ParcelamentoSyncer)
	parcelamentosGroup.Get("/", parcelamentoHandler.List)
	parcelamentosGroup.Post("/sync", parcelamentoHandler.Sync)
	parcelamentosGroup.Get("/:id", parcelamentoHandler.GetByID)

	cobrancasGroup := protected.Group("/cobrancas")
	cobrancaHandler := NewCobrancaHandler(deps.CobrancaRepo, deps.CobrancaSyncer)
	cobrancasGroup.Get("/", cobrancaHandler.List)
	cobrancasGroup.Post("/sync", cobrancaHandler.Sync)
	cobrancasGroup.Get("/:id", cobrancaHandler.GetByID)

	vendasGroup := protected.Group("/vendas")
	vendaHandler := NewVendaHandler(deps.VendasUC)
	vendasGroup.Post("/", vendaHandler.Create)
	vendasGroup.Get("/:id/pdf", vendaHandler.CarnePDF)

	// Sincronização completa
	syncHandler := NewSyncHandler(deps.TudoSyncer)
	protected.Post("/sync", syncHandler.SyncTudo)
}
