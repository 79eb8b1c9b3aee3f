package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
	"github.com/agrosystemapp/agroserver-api/pkg/documento"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementação de ClienteRepository sobre PostgreSQL
// (usável com pool ou tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteCols = `
	id, asaas_id, nome, email, telefone, celular, cpf_cnpj, tipo_pessoa,
	estrangeiro, endereco, numero_endereco, complemento, bairro, cidade_id,
	cidade_nome, estado, pais, cep, emails_adicionais, referencia_externa,
	notificacoes_desabilitadas, observacoes, verificado, vendedor_id,
	vendedor_nome, foto_documento_url, deletado, data_criacao_asaas,
	criado_em, atualizado_em`

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.AsaasID, &c.Nome, &c.Email, &c.Telefone, &c.Celular, &c.CpfCnpj, &c.TipoPessoa,
		&c.Estrangeiro, &c.Endereco, &c.NumeroEndereco, &c.Complemento, &c.Bairro, &c.CidadeID,
		&c.CidadeNome, &c.Estado, &c.Pais, &c.CEP, &c.EmailsAdicionais, &c.ReferenciaExterna,
		&c.NotificacoesDesabilitadas, &c.Observacoes, &c.Verificado, &c.VendedorID,
		&c.VendedorNome, &c.FotoDocumentoURL, &c.Deletado, &c.DataCriacaoAsaas,
		&c.CriadoEm, &c.AtualizadoEm,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindIDByAsaasID devolve o id local para o asaas_id, ou 0 se não existir.
// É o lookup que precede toda escrita do sync (decide insert vs. update).
func (r *ClienteRepo) FindIDByAsaasID(ctx context.Context, asaasID string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `SELECT id FROM clientes WHERE asaas_id = $1`, asaasID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("buscar cliente por asaas_id: %w", err)
	}
	return id, nil
}

// Create insere um novo cliente e devolve o id local.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) (int64, error) {
	query := `
		INSERT INTO clientes (
			asaas_id, nome, email, telefone, celular, cpf_cnpj, tipo_pessoa,
			estrangeiro, endereco, numero_endereco, complemento, bairro, cidade_id,
			cidade_nome, estado, pais, cep, emails_adicionais, referencia_externa,
			notificacoes_desabilitadas, observacoes, verificado, vendedor_id,
			vendedor_nome, foto_documento_url, deletado, data_criacao_asaas
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
		)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		c.AsaasID, c.Nome, c.Email, c.Telefone, c.Celular, c.CpfCnpj, c.TipoPessoa,
		c.Estrangeiro, c.Endereco, c.NumeroEndereco, c.Complemento, c.Bairro, c.CidadeID,
		c.CidadeNome, c.Estado, c.Pais, c.CEP, c.EmailsAdicionais, c.ReferenciaExterna,
		c.NotificacoesDesabilitadas, c.Observacoes, c.Verificado, c.VendedorID,
		c.VendedorNome, c.FotoDocumentoURL, c.Deletado, c.DataCriacaoAsaas,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert cliente: %w", err)
	}
	return id, nil
}

// UpdateByAsaasID sobrescreve todas as colunas espelhadas do cliente com o
// asaas_id informado (overwrite completo, como exige o upsert do sync).
func (r *ClienteRepo) UpdateByAsaasID(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET
			nome = $1, email = $2, telefone = $3, celular = $4, cpf_cnpj = $5,
			tipo_pessoa = $6, estrangeiro = $7, endereco = $8, numero_endereco = $9,
			complemento = $10, bairro = $11, cidade_id = $12, cidade_nome = $13,
			estado = $14, pais = $15, cep = $16, emails_adicionais = $17,
			referencia_externa = $18, notificacoes_desabilitadas = $19,
			observacoes = $20, deletado = $21, data_criacao_asaas = $22,
			atualizado_em = CURRENT_TIMESTAMP
		WHERE asaas_id = $23`
	_, err := r.q.Exec(ctx, query,
		c.Nome, c.Email, c.Telefone, c.Celular, c.CpfCnpj,
		c.TipoPessoa, c.Estrangeiro, c.Endereco, c.NumeroEndereco,
		c.Complemento, c.Bairro, c.CidadeID, c.CidadeNome,
		c.Estado, c.Pais, c.CEP, c.EmailsAdicionais,
		c.ReferenciaExterna, c.NotificacoesDesabilitadas,
		c.Observacoes, c.Deletado, c.DataCriacaoAsaas,
		c.AsaasID,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// GetByID obtém um cliente ativo por id local.
func (r *ClienteRepo) GetByID(ctx context.Context, id int64) (*entity.Cliente, error) {
	row := r.q.QueryRow(ctx, `SELECT `+clienteCols+` FROM clientes WHERE id = $1 AND deletado = false`, id)
	c, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	return c, nil
}

// GetAtivoByDocumento obtém um cliente ativo pelo CPF/CNPJ (apenas dígitos).
func (r *ClienteRepo) GetAtivoByDocumento(ctx context.Context, cpfCnpj string) (*entity.Cliente, error) {
	row := r.q.QueryRow(ctx, `SELECT `+clienteCols+` FROM clientes WHERE cpf_cnpj = $1 AND deletado = false`, cpfCnpj)
	c, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar cliente por documento: %w", err)
	}
	return c, nil
}

// List lista clientes ativos com busca por nome ou CPF, ordenação e paginação.
func (r *ClienteRepo) List(ctx context.Context, f repository.ClientesFilter) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteCols + ` FROM clientes WHERE deletado = false`
	args := []any{}
	idx := 1

	if busca := strings.TrimSpace(f.Busca); busca != "" {
		digitos := documento.ApenasDigitos(busca)
		if digitos != "" {
			query += fmt.Sprintf(" AND (nome ILIKE $%d OR cpf_cnpj LIKE $%d)", idx, idx+1)
			args = append(args, "%"+busca+"%", "%"+digitos+"%")
			idx += 2
		} else {
			query += fmt.Sprintf(" AND nome ILIKE $%d", idx)
			args = append(args, "%"+busca+"%")
			idx++
		}
	}

	// Whitelist de ordenação (nunca interpolar entrada do usuário).
	ordem := "nome"
	switch f.Ordem {
	case "criado_em", "id":
		ordem = f.Ordem
	}
	query += " ORDER BY " + ordem + " ASC"

	limite := f.Limite
	if limite <= 0 {
		limite = 100
	}
	if limite > 500 {
		limite = 500
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limite, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ListAtivosAsaasIDs enumera os asaas_id de todos os clientes ativos espelhados
// do provedor (asaas_id não vazio). Base da reconciliação pós-sync.
func (r *ClienteRepo) ListAtivosAsaasIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT asaas_id FROM clientes WHERE deletado = false AND asaas_id <> ''`)
	if err != nil {
		return nil, fmt.Errorf("listar clientes ativos: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan asaas_id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SoftDeleteByAsaasID marca o cliente como deletado sem remover a linha.
func (r *ClienteRepo) SoftDeleteByAsaasID(ctx context.Context, asaasID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE clientes SET deletado = true, atualizado_em = CURRENT_TIMESTAMP WHERE asaas_id = $1`,
		asaasID,
	)
	if err != nil {
		return fmt.Errorf("soft-delete cliente: %w", err)
	}
	return nil
}
