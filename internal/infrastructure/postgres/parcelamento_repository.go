package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/agrosystemapp/agroserver-api/internal/domain/entity"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
)

var _ repository.ParcelamentoRepository = (*ParcelamentoRepo)(nil)

// ParcelamentoRepo implementação de ParcelamentoRepository sobre PostgreSQL.
type ParcelamentoRepo struct {
	q Querier
}

func NewParcelamentoRepository(q Querier) *ParcelamentoRepo {
	return &ParcelamentoRepo{q: q}
}

const parcelamentoCols = `
	id, asaas_id, valor, valor_liquido, valor_parcela, numero_parcelas,
	forma_pagamento, data_pagamento, descricao, dia_vencimento,
	cliente_asaas_id, payment_link, checkout_session, url_comprovante,
	cartao_ultimos_digitos, cartao_bandeira, cartao_token,
	deletado, data_criacao_asaas`

func scanParcelamento(row pgx.Row) (*entity.Parcelamento, error) {
	var p entity.Parcelamento
	err := row.Scan(
		&p.ID, &p.AsaasID, &p.Valor, &p.ValorLiquido, &p.ValorParcela, &p.NumeroParcelas,
		&p.FormaPagamento, &p.DataPagamento, &p.Descricao, &p.DiaVencimento,
		&p.ClienteAsaasID, &p.PaymentLink, &p.CheckoutSession, &p.URLComprovante,
		&p.CartaoUltimosDigitos, &p.CartaoBandeira, &p.CartaoToken,
		&p.Deletado, &p.DataCriacaoAsaas,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParcelamentoRepo) FindIDByAsaasID(ctx context.Context, asaasID string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `SELECT id FROM parcelamentos WHERE asaas_id = $1`, asaasID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("buscar parcelamento por asaas_id: %w", err)
	}
	return id, nil
}

func (r *ParcelamentoRepo) Create(ctx context.Context, p *entity.Parcelamento) (int64, error) {
	query := `
		INSERT INTO parcelamentos (
			asaas_id, valor, valor_liquido, valor_parcela, numero_parcelas,
			forma_pagamento, data_pagamento, descricao, dia_vencimento,
			cliente_asaas_id, payment_link, checkout_session, url_comprovante,
			cartao_ultimos_digitos, cartao_bandeira, cartao_token,
			deletado, data_criacao_asaas
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		p.AsaasID, p.Valor, p.ValorLiquido, p.ValorParcela, p.NumeroParcelas,
		p.FormaPagamento, p.DataPagamento, p.Descricao, p.DiaVencimento,
		p.ClienteAsaasID, p.PaymentLink, p.CheckoutSession, p.URLComprovante,
		p.CartaoUltimosDigitos, p.CartaoBandeira, p.CartaoToken,
		p.Deletado, p.DataCriacaoAsaas,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert parcelamento: %w", err)
	}
	return id, nil
}

func (r *ParcelamentoRepo) UpdateByAsaasID(ctx context.Context, p *entity.Parcelamento) error {
	query := `
		UPDATE parcelamentos SET
			valor = $1, valor_liquido = $2, valor_parcela = $3, numero_parcelas = $4,
			forma_pagamento = $5, data_pagamento = $6, descricao = $7, dia_vencimento = $8,
			cliente_asaas_id = $9, payment_link = $10, checkout_session = $11,
			url_comprovante = $12, cartao_ultimos_digitos = $13, cartao_bandeira = $14,
			cartao_token = $15, deletado = $16, data_criacao_asaas = $17
		WHERE asaas_id = $18`
	_, err := r.q.Exec(ctx, query,
		p.Valor, p.ValorLiquido, p.ValorParcela, p.NumeroParcelas,
		p.FormaPagamento, p.DataPagamento, p.Descricao, p.DiaVencimento,
		p.ClienteAsaasID, p.PaymentLink, p.CheckoutSession,
		p.URLComprovante, p.CartaoUltimosDigitos, p.CartaoBandeira,
		p.CartaoToken, p.Deletado, p.DataCriacaoAsaas,
		p.AsaasID,
	)
	if err != nil {
		return fmt.Errorf("update parcelamento: %w", err)
	}
	return nil
}

// GetByIDOrAsaasID busca por id local quando o parâmetro é numérico e por
// asaas_id caso contrário. Devolve nil quando não encontra.
func (r *ParcelamentoRepo) GetByIDOrAsaasID(ctx context.Context, id string) (*entity.Parcelamento, error) {
	var row pgx.Row
	if localID, err := strconv.ParseInt(id, 10, 64); err == nil {
		row = r.q.QueryRow(ctx, `SELECT `+parcelamentoCols+` FROM parcelamentos WHERE id = $1 AND deletado = false`, localID)
	} else {
		row = r.q.QueryRow(ctx, `SELECT `+parcelamentoCols+` FROM parcelamentos WHERE asaas_id = $1 AND deletado = false`, id)
	}
	p, err := scanParcelamento(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar parcelamento: %w", err)
	}
	return p, nil
}

func (r *ParcelamentoRepo) List(ctx context.Context, clienteAsaasID string, limite, offset int) ([]*entity.Parcelamento, error) {
	query := `SELECT ` + parcelamentoCols + ` FROM parcelamentos WHERE deletado = false`
	args := []any{}
	idx := 1
	if clienteAsaasID != "" {
		query += fmt.Sprintf(" AND cliente_asaas_id = $%d", idx)
		args = append(args, clienteAsaasID)
		idx++
	}
	if limite <= 0 {
		limite = 100
	}
	if limite > 500 {
		limite = 500
	}
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limite, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar parcelamentos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Parcelamento
	for rows.Next() {
		p, err := scanParcelamento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan parcelamento: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
