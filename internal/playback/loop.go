package playback

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Run обрабатывает события по одному в порядке поступления.
// Возвращает ctx.Err() при отмене контекста и nil при закрытии канала.
func Run(ctx context.Context, c *Coordinator, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := c.Dispatch(ev); err != nil {
				log.Error().Err(err).Msg("ошибка обработки события")
			}
		}
	}
}
