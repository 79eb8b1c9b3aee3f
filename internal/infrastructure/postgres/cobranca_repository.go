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

var _ repository.CobrancaRepository = (*CobrancaRepo)(nil)

// CobrancaRepo implementação de CobrancaRepository sobre PostgreSQL.
type CobrancaRepo struct {
	q Querier
}

func NewCobrancaRepository(q Querier) *CobrancaRepo {
	return &CobrancaRepo{q: q}
}

const cobrancaCols = `
	id, asaas_id, valor, valor_liquido, valor_original, valor_juros,
	descricao, forma_pagamento, status,
	data_criacao_asaas, data_vencimento, data_vencimento_original,
	data_pagamento, data_pagamento_cliente, data_credito, data_credito_estimada,
	cliente_asaas_id, assinatura_id, parcelamento_id, numero_parcela,
	checkout_session, payment_link, url_fatura, numero_fatura, referencia_externa,
	nosso_numero, url_boleto, pode_pagar_apos_vencimento,
	pix_transacao_id, pix_qrcode_id,
	cartao_ultimos_digitos, cartao_bandeira, cartao_token, url_comprovante,
	desconto_valor, desconto_dias_limite, desconto_tipo,
	multa_percentual, juros_percentual,
	deletado, antecipado, antecipavel, envio_correios,
	dias_apos_vencimento_para_cancelamento`

func scanCobranca(row pgx.Row) (*entity.Cobranca, error) {
	var c entity.Cobranca
	err := row.Scan(
		&c.ID, &c.AsaasID, &c.Valor, &c.ValorLiquido, &c.ValorOriginal, &c.ValorJuros,
		&c.Descricao, &c.FormaPagamento, &c.Status,
		&c.DataCriacaoAsaas, &c.DataVencimento, &c.DataVencimentoOriginal,
		&c.DataPagamento, &c.DataPagamentoCliente, &c.DataCredito, &c.DataCreditoEstimada,
		&c.ClienteAsaasID, &c.AssinaturaID, &c.ParcelamentoID, &c.NumeroParcela,
		&c.CheckoutSession, &c.PaymentLink, &c.URLFatura, &c.NumeroFatura, &c.ReferenciaExterna,
		&c.NossoNumero, &c.URLBoleto, &c.PodePagarAposVencimento,
		&c.PixTransacaoID, &c.PixQrCodeID,
		&c.CartaoUltimosDigitos, &c.CartaoBandeira, &c.CartaoToken, &c.URLComprovante,
		&c.DescontoValor, &c.DescontoDiasLimite, &c.DescontoTipo,
		&c.MultaPercentual, &c.JurosPercentual,
		&c.Deletado, &c.Antecipado, &c.Antecipavel, &c.EnvioCorreios,
		&c.DiasAposVencimentoParaCancelamento,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CobrancaRepo) FindIDByAsaasID(ctx context.Context, asaasID string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `SELECT id FROM cobrancas WHERE asaas_id = $1`, asaasID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("buscar cobrança por asaas_id: %w", err)
	}
	return id, nil
}

func (r *CobrancaRepo) Create(ctx context.Context, c *entity.Cobranca) (int64, error) {
	query := `
		INSERT INTO cobrancas (
			asaas_id, valor, valor_liquido, valor_original, valor_juros,
			descricao, forma_pagamento, status,
			data_criacao_asaas, data_vencimento, data_vencimento_original,
			data_pagamento, data_pagamento_cliente, data_credito, data_credito_estimada,
			cliente_asaas_id, assinatura_id, parcelamento_id, numero_parcela,
			checkout_session, payment_link, url_fatura, numero_fatura, referencia_externa,
			nosso_numero, url_boleto, pode_pagar_apos_vencimento,
			pix_transacao_id, pix_qrcode_id,
			cartao_ultimos_digitos, cartao_bandeira, cartao_token, url_comprovante,
			desconto_valor, desconto_dias_limite, desconto_tipo,
			multa_percentual, juros_percentual,
			deletado, antecipado, antecipavel, envio_correios,
			dias_apos_vencimento_para_cancelamento
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
			$41, $42, $43
		)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		c.AsaasID, c.Valor, c.ValorLiquido, c.ValorOriginal, c.ValorJuros,
		c.Descricao, c.FormaPagamento, c.Status,
		c.DataCriacaoAsaas, c.DataVencimento, c.DataVencimentoOriginal,
		c.DataPagamento, c.DataPagamentoCliente, c.DataCredito, c.DataCreditoEstimada,
		c.ClienteAsaasID, c.AssinaturaID, c.ParcelamentoID, c.NumeroParcela,
		c.CheckoutSession, c.PaymentLink, c.URLFatura, c.NumeroFatura, c.ReferenciaExterna,
		c.NossoNumero, c.URLBoleto, c.PodePagarAposVencimento,
		c.PixTransacaoID, c.PixQrCodeID,
		c.CartaoUltimosDigitos, c.CartaoBandeira, c.CartaoToken, c.URLComprovante,
		c.DescontoValor, c.DescontoDiasLimite, c.DescontoTipo,
		c.MultaPercentual, c.JurosPercentual,
		c.Deletado, c.Antecipado, c.Antecipavel, c.EnvioCorreios,
		c.DiasAposVencimentoParaCancelamento,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert cobrança: %w", err)
	}
	return id, nil
}

func (r *CobrancaRepo) UpdateByAsaasID(ctx context.Context, c *entity.Cobranca) error {
	query := `
		UPDATE cobrancas SET
			valor = $1, valor_liquido = $2, valor_original = $3, valor_juros = $4,
			descricao = $5, forma_pagamento = $6, status = $7,
			data_criacao_asaas = $8, data_vencimento = $9, data_vencimento_original = $10,
			data_pagamento = $11, data_pagamento_cliente = $12, data_credito = $13,
			data_credito_estimada = $14,
			cliente_asaas_id = $15, assinatura_id = $16, parcelamento_id = $17,
			numero_parcela = $18,
			checkout_session = $19, payment_link = $20, url_fatura = $21,
			numero_fatura = $22, referencia_externa = $23,
			nosso_numero = $24, url_boleto = $25, pode_pagar_apos_vencimento = $26,
			pix_transacao_id = $27, pix_qrcode_id = $28,
			cartao_ultimos_digitos = $29, cartao_bandeira = $30, cartao_token = $31,
			url_comprovante = $32,
			desconto_valor = $33, desconto_dias_limite = $34, desconto_tipo = $35,
			multa_percentual = $36, juros_percentual = $37,
			deletado = $38, antecipado = $39, antecipavel = $40, envio_correios = $41,
			dias_apos_vencimento_para_cancelamento = $42
		WHERE asaas_id = $43`
	_, err := r.q.Exec(ctx, query,
		c.Valor, c.ValorLiquido, c.ValorOriginal, c.ValorJuros,
		c.Descricao, c.FormaPagamento, c.Status,
		c.DataCriacaoAsaas, c.DataVencimento, c.DataVencimentoOriginal,
		c.DataPagamento, c.DataPagamentoCliente, c.DataCredito,
		c.DataCreditoEstimada,
		c.ClienteAsaasID, c.AssinaturaID, c.ParcelamentoID,
		c.NumeroParcela,
		c.CheckoutSession, c.PaymentLink, c.URLFatura,
		c.NumeroFatura, c.ReferenciaExterna,
		c.NossoNumero, c.URLBoleto, c.PodePagarAposVencimento,
		c.PixTransacaoID, c.PixQrCodeID,
		c.CartaoUltimosDigitos, c.CartaoBandeira, c.CartaoToken,
		c.URLComprovante,
		c.DescontoValor, c.DescontoDiasLimite, c.DescontoTipo,
		c.MultaPercentual, c.JurosPercentual,
		c.Deletado, c.Antecipado, c.Antecipavel, c.EnvioCorreios,
		c.DiasAposVencimentoParaCancelamento,
		c.AsaasID,
	)
	if err != nil {
		return fmt.Errorf("update cobrança: %w", err)
	}
	return nil
}

// GetByIDOrAsaasID busca por id local quando o parâmetro é numérico e por
// asaas_id caso contrário.
func (r *CobrancaRepo) GetByIDOrAsaasID(ctx context.Context, id string) (*entity.Cobranca, error) {
	var row pgx.Row
	if localID, err := strconv.ParseInt(id, 10, 64); err == nil {
		row = r.q.QueryRow(ctx, `SELECT `+cobrancaCols+` FROM cobrancas WHERE id = $1 AND deletado = false`, localID)
	} else {
		row = r.q.QueryRow(ctx, `SELECT `+cobrancaCols+` FROM cobrancas WHERE asaas_id = $1 AND deletado = false`, id)
	}
	c, err := scanCobranca(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar cobrança: %w", err)
	}
	return c, nil
}

func (r *CobrancaRepo) List(ctx context.Context, f repository.CobrancasFilter) ([]*entity.Cobranca, error) {
	query := `SELECT ` + cobrancaCols + ` FROM cobrancas WHERE deletado = false`
	args := []any{}
	idx := 1

	add := func(cond, val string) {
		if val == "" {
			return
		}
		query += fmt.Sprintf(" AND %s = $%d", cond, idx)
		args = append(args, val)
		idx++
	}
	add("cliente_asaas_id", f.ClienteAsaasID)
	add("status", f.Status)
	add("forma_pagamento", f.FormaPagamento)
	add("parcelamento_id", f.ParcelamentoID)

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
	query += fmt.Sprintf(" ORDER BY data_vencimento ASC, numero_parcela ASC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limite, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar cobranças: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cobranca
	for rows.Next() {
		c, err := scanCobranca(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cobrança: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
