// Package clientes implementa o cadastro manual e a consulta de clientes.
// O cadastro cria primeiro no Asaas e depois grava localmente, com
// compensação remota quando a gravação local falha.
package clientes

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/agrosystemapp/agroserver-api/internal/application/dto"
	"github.com/agrosystemapp/agroserver-api/internal/domain"
	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
	"github.com/agrosystemapp/agroserver-api/pkg/documento"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

// AsaasGateway operações de customer usadas pelo cadastro manual.
type AsaasGateway interface {
	FindClienteByCPF(ctx context.Context, cpfCnpj string) (*asaas.Cliente, error)
	CreateCliente(ctx context.Context, novo asaas.NovoCliente) (*asaas.Cliente, error)
	DeleteCliente(ctx context.Context, asaasID string) error
}

// FotoStorage guarda e remove fotos de documento.
type FotoStorage interface {
	Save(fh *multipart.FileHeader, subdir, nomeBase string) (string, error)
	Remove(relativo string) error
}

// ErroValidacao falha de validação com mensagem própria para o cliente HTTP.
type ErroValidacao struct {
	Mensagem string
}

func (e *ErroValidacao) Error() string { return e.Mensagem }

// ErroConflito documento já cadastrado, localmente ou no provedor.
type ErroConflito struct {
	Mensagem string
	Cliente  dto.ClienteResumo
}

func (e *ErroConflito) Error() string { return e.Mensagem }

// UseCase casos de uso de clientes.
type UseCase struct {
	repo    repository.ClienteRepository
	gateway AsaasGateway
	fotos   FotoStorage
	timeout time.Duration
	log     *logger.Logger
}

// NewUseCase constrói o caso de uso. timeout limita cada chamada ao Asaas.
func NewUseCase(repo repository.ClienteRepository, gateway AsaasGateway, fotos FotoStorage, timeout time.Duration, log *logger.Logger) *UseCase {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &UseCase{repo: repo, gateway: gateway, fotos: fotos, timeout: timeout, log: log}
}

// Cadastrar executa o fluxo completo de cadastro manual: valida os dados,
// checa duplicidade local e remota, cria o customer no Asaas, salva a foto e
// insere o registro local. Se a gravação local falhar, remove o customer
// remoto e a foto (melhor esforço).
func (uc *UseCase) Cadastrar(ctx context.Context, in dto.CadastroClienteRequest, foto *multipart.FileHeader, vendedorID int64) (*dto.CadastroClienteResponse, error) {
	if in.Nome == "" || in.Documento == "" || in.Telefone == "" || in.Endereco == "" || in.VendedorNome == "" || vendedorID == 0 {
		return nil, &ErroValidacao{Mensagem: "Todos os campos obrigatórios devem ser preenchidos"}
	}
	if foto == nil {
		return nil, &ErroValidacao{Mensagem: "Foto do documento é obrigatória"}
	}
	if in.Verificado != "true" {
		return nil, &ErroValidacao{Mensagem: "Cliente deve passar pela verificação antes do cadastro"}
	}
	if !documento.ValidarDocumento(in.Documento) {
		return nil, &ErroValidacao{Mensagem: "CPF ou CNPJ inválido"}
	}
	if !documento.ValidarTelefone(in.Telefone) {
		return nil, &ErroValidacao{Mensagem: "Telefone inválido"}
	}

	documentoLimpo := documento.ApenasDigitos(in.Documento)
	telefoneLimpo := documento.ApenasDigitos(in.Telefone)

	existente, err := uc.repo.GetAtivoByDocumento(ctx, documentoLimpo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, &ErroConflito{
			Mensagem: "Cliente com este documento já está cadastrado",
			Cliente: dto.ClienteResumo{
				ID:               existente.ID,
				Nome:             existente.Nome,
				Documento:        existente.CpfCnpj,
				Telefone:         existente.Telefone,
				Endereco:         existente.Endereco,
				Verificado:       existente.Verificado,
				VendedorID:       existente.VendedorID,
				VendedorNome:     existente.VendedorNome,
				AsaasCustomerID:  existente.AsaasID,
				FotoDocumentoURL: existente.FotoDocumentoURL,
				CriadoEm:         existente.CriadoEm,
			},
		}
	}

	remotoCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	remoto, err := uc.gateway.FindClienteByCPF(remotoCtx, documentoLimpo)
	if err != nil {
		// Falha na consulta não impede o cadastro.
		uc.log.Warn().Err(err).Msg("falha ao consultar documento no Asaas")
	}
	if remoto != nil {
		return nil, &ErroConflito{
			Mensagem: "Cliente com este CPF/CNPJ já está cadastrado no Asaas",
			Cliente: dto.ClienteResumo{
				Nome:            remoto.Name,
				Documento:       remoto.CpfCnpj,
				Telefone:        coalesce(remoto.Phone, remoto.MobilePhone),
				Email:           remoto.Email,
				AsaasCustomerID: remoto.ID,
			},
		}
	}

	criado, err := uc.gateway.CreateCliente(remotoCtx, asaas.NovoCliente{
		Name:                 in.Nome,
		CpfCnpj:              documentoLimpo,
		Phone:                telefoneLimpo,
		MobilePhone:          telefoneLimpo,
		Complement:           in.Endereco,
		NotificationDisabled: true,
	})
	if err != nil {
		return nil, &ErroValidacao{Mensagem: "Erro ao cadastrar no Asaas: " + err.Error()}
	}
	uc.log.Info().Str("asaas_id", criado.ID).Msg("cliente criado no Asaas")

	fotoRel, err := uc.fotos.Save(foto, "documentos", documentoLimpo)
	if err != nil {
		uc.rollbackRemoto(criado.ID)
		return nil, &ErroValidacao{Mensagem: err.Error()}
	}
	fotoURL := "/uploads/" + fotoRel

	cliente := &entity.Cliente{
		AsaasID:          criado.ID,
		Nome:             in.Nome,
		CpfCnpj:          documentoLimpo,
		Telefone:         telefoneLimpo,
		Endereco:         in.Endereco,
		Verificado:       true,
		VendedorID:       vendedorID,
		VendedorNome:     in.VendedorNome,
		FotoDocumentoURL: fotoURL,
	}
	id, err := uc.repo.Create(ctx, cliente)
	if err != nil {
		uc.rollbackRemoto(criado.ID)
		if rmErr := uc.fotos.Remove(fotoRel); rmErr != nil {
			uc.log.Warn().Err(rmErr).Msg("falha ao remover foto após rollback")
		}
		return nil, err
	}

	uc.log.Info().Int64("id", id).Str("asaas_id", criado.ID).Msg("cliente cadastrado")
	return &dto.CadastroClienteResponse{
		Sucesso:  true,
		Mensagem: "Cliente cadastrado com sucesso",
		Cliente: dto.ClienteResumo{
			ID:               id,
			Nome:             in.Nome,
			Documento:        documentoLimpo,
			Telefone:         telefoneLimpo,
			Endereco:         in.Endereco,
			Verificado:       true,
			VendedorID:       vendedorID,
			VendedorNome:     in.VendedorNome,
			AsaasCustomerID:  criado.ID,
			FotoDocumentoURL: fotoURL,
		},
	}, nil
}

// rollbackRemoto remove um customer criado no Asaas quando o fluxo local
// falha. Melhor esforço: erro só vai para o log.
func (uc *UseCase) rollbackRemoto(asaasID string) {
	ctx, cancel := context.WithTimeout(context.Background(), uc.timeout)
	defer cancel()
	if err := uc.gateway.DeleteCliente(ctx, asaasID); err != nil {
		uc.log.Error().Err(err).Str("asaas_id", asaasID).Msg("falha no rollback do Asaas")
		return
	}
	uc.log.Info().Str("asaas_id", asaasID).Msg("rollback no Asaas concluído")
}

// Listar devolve clientes ativos com busca, ordenação e paginação.
func (uc *UseCase) Listar(ctx context.Context, in dto.ListarClientesRequest) (*dto.ListarClientesResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ClientesFilter{
		Busca:  in.Busca,
		Ordem:  in.Ordem,
		Limite: in.Limite,
		Offset: in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	itens := make([]dto.ClienteItem, 0, len(list))
	for _, c := range list {
		itens = append(itens, dto.ClienteItem{
			ID:              c.ID,
			Nome:            c.Nome,
			CPF:             c.CpfCnpj,
			Telefone:        c.Telefone,
			Email:           c.Email,
			Endereco:        c.Endereco,
			AsaasCustomerID: c.AsaasID,
			VendedorID:      c.VendedorID,
			VendedorNome:    c.VendedorNome,
			CriadoEm:        c.CriadoEm,
			AtualizadoEm:    c.AtualizadoEm,
		})
	}
	return &dto.ListarClientesResponse{Sucesso: true, Clientes: itens, Total: len(itens)}, nil
}

// BuscarPorID devolve um cliente ativo pelo id local.
func (uc *UseCase) BuscarPorID(ctx context.Context, id int64) (*entity.Cliente, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return c, nil
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
