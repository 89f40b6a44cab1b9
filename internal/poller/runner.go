// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits a Reading on the provided channel.
// One goroutine per channel. No overlap. No retries.
func (p *Poller) Run(ctx context.Context, out chan<- Reading) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r := p.PollOnce(ctx)
			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
		}
	}
}
