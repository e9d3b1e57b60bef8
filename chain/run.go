package chain

import (
	"context"
	"time"
)

// Run produces blocks until ctx is done. With a positive blockTime a block
// is sealed on every tick; otherwise a block is sealed as soon as a
// transaction enters the pool.
func (app *App) Run(ctx context.Context, blockTime time.Duration) error {
	var tick <-chan time.Time
	if blockTime > 0 {
		ticker := time.NewTicker(blockTime)
		defer ticker.Stop()
		tick = ticker.C
	}

	app.logger.Info("block production started", "block_time", blockTime.String())
	for {
		select {
		case <-ctx.Done():
			app.logger.Info("block production stopped")
			return nil
		case <-tick:
		case <-app.pool.Notify():
			if tick != nil {
				continue
			}
		}

		if _, err := app.ProduceBlock(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}
