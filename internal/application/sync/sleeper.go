package sync

import (
	"context"
	"time"
)

// Sleeper abstrai as pausas fixas entre registros, páginas e etapas, para que
// os testes rodem sem esperas reais.
type Sleeper interface {
	// Sleep bloqueia por d ou até o context ser cancelado; devolve ctx.Err()
	// no segundo caso.
	Sleep(ctx context.Context, d time.Duration) error
}

type relogioSleeper struct{}

// NewSleeper devolve o Sleeper de relógio real.
func NewSleeper() Sleeper { return relogioSleeper{} }

func (relogioSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
