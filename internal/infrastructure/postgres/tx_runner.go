package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrosystemapp/agroserver-api/internal/application/vendas"
	"github.com/agrosystemapp/agroserver-api/internal/domain/repository"
)

var _ vendas.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner sobre o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVenda abre uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback. Usado pela venda manual para gravar parcelamento e
// cobranças como unidade única.
func (r *TxRunner) RunVenda(ctx context.Context, fn func(
	parcRepo repository.ParcelamentoRepository,
	cobRepo repository.CobrancaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	parcRepo := NewParcelamentoRepository(tx)
	cobRepo := NewCobrancaRepository(tx)

	if err := fn(parcRepo, cobRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
