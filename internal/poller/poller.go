// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"io"
	"time"
)

// Source reads the current setpoint of one control loop.
type Source interface {
	ReadSetpoint(ctx context.Context) (float64, error)
}

// Factory creates a fresh Source. ONE attempt per call.
type Factory func() (Source, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	ChannelID string
	Interval  time.Duration
}

// Poller is a dumb, clock-driven setpoint reader.
type Poller struct {
	cfg     Config
	source  Source
	factory Factory
}

// New creates a poller with immutable config.
// source may be nil when factory is set; it is then created on the first poll.
func New(cfg Config, source Source, factory Factory) (*Poller, error) {
	if cfg.ChannelID == "" {
		return nil, errors.New("poller: channel id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if source == nil && factory == nil {
		return nil, errors.New("poller: source or factory required")
	}
	return &Poller{cfg: cfg, source: source, factory: factory}, nil
}

// PollOnce performs exactly one poll cycle.
// On failure the source is discarded (if a factory exists) and rebuilt on a later cycle.
func (p *Poller) PollOnce(ctx context.Context) Reading {
	res := Reading{
		ChannelID: p.cfg.ChannelID,
		At:        time.Now(),
	}

	if p.source == nil {
		src, err := p.factory()
		if err != nil {
			res.Err = err
			return res
		}
		p.source = src
	}

	sp, err := p.source.ReadSetpoint(ctx)
	if err != nil {
		res.Err = err
		p.discard()
		return res
	}

	res.Setpoint = sp
	return res
}

// Close releases the current source.
func (p *Poller) Close() error {
	if c, ok := p.source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (p *Poller) discard() {
	if p.factory == nil {
		return
	}
	_ = p.Close()
	p.source = nil
}
