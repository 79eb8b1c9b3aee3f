package sync

import (
	"context"
	"time"

	"github.com/agrosystemapp/agroserver-api/internal/infrastructure/asaas"
	"github.com/agrosystemapp/agroserver-api/pkg/logger"
)

// Pausas fixas da sincronização. Servem de limite de taxa autoimposto contra
// a API do provedor; não são adaptativas.
const (
	delayRegistro = 100 * time.Millisecond
	delayPagina   = 2 * time.Second
	delayEtapa    = 10 * time.Second
)

// percorrerPaginas itera o recurso remoto página a página (offset avança em
// passos de pageSize até hasMore == false), chamando aplicar para cada
// registro na ordem devolvida pelo provedor, sempre em série.
//
// O cancelamento é cooperativo: o context é observado no topo de cada página,
// no topo de cada registro e durante as pausas. Ao ser observado, nenhuma
// chamada externa adicional é feita e a função devolve completo == false sem
// erro. Erros de rede ou de gravação interrompem na hora, sem retry, e o
// progresso já gravado permanece.
func percorrerPaginas[T any](
	ctx context.Context,
	listar func(ctx context.Context, offset, limit int) (*asaas.Pagina[T], error),
	pageSize int,
	sleep Sleeper,
	log *logger.Logger,
	aplicar func(ctx context.Context, item T) error,
) (completo bool, err error) {
	offset := 0
	for {
		if ctx.Err() != nil {
			return false, nil
		}

		pagina, err := listar(ctx, offset, pageSize)
		if err != nil {
			return false, err
		}
		log.Debug().Int("offset", offset).Int("registros", len(pagina.Data)).Msg("página recebida")

		for _, item := range pagina.Data {
			if ctx.Err() != nil {
				return false, nil
			}
			if err := aplicar(ctx, item); err != nil {
				return false, err
			}
			if err := sleep.Sleep(ctx, delayRegistro); err != nil {
				return false, nil
			}
		}

		if !pagina.HasMore {
			return true, nil
		}
		offset += pageSize
		if err := sleep.Sleep(ctx, delayPagina); err != nil {
			return false, nil
		}
	}
}
