// internal/poller/builder.go
package poller

import (
	"context"
	"log"
	"time"

	"github.com/ansel1/merry"

	cfg "github.com/tamzrod/excitation-controller/internal/config"
	"github.com/tamzrod/excitation-controller/internal/lakeshore"
	pmodbus "github.com/tamzrod/excitation-controller/internal/poller/modbus"
)

// Build constructs a Poller for one channel and wires the source lifecycle.
// The connection is reused while healthy.
// On transport death, Poller discards the source and uses the factory on a future tick.
// trace (optional) receives Modbus frame traces.
func Build(c cfg.ChannelConfig, trace *log.Logger) (*Poller, func() error, error) {
	factory, err := sourceFactory(c.Source, trace)
	if err != nil {
		return nil, nil, err
	}

	// initial source (fail fast at startup)
	src, err := factory()
	if err != nil {
		return nil, nil, err
	}

	p, err := New(
		Config{
			ChannelID: c.ID,
			Interval:  time.Duration(c.Poll.IntervalMs) * time.Millisecond,
		},
		src,
		factory,
	)
	if err != nil {
		return nil, nil, err
	}

	return p, p.Close, nil
}

func sourceFactory(s cfg.SourceConfig, trace *log.Logger) (Factory, error) {
	timeout := time.Duration(s.TimeoutMs) * time.Millisecond

	switch s.Kind {
	case cfg.KindModbus, cfg.KindModbusRTU:
		mc := pmodbus.Config{
			Endpoint:  s.Endpoint,
			RTU:       s.Kind == cfg.KindModbusRTU,
			UnitID:    s.UnitID,
			Register:  s.Register,
			WordOrder: pmodbus.WordOrder(s.WordOrder),
			Timeout:   timeout,
			BaudRate:  s.Serial.BaudRate,
			DataBits:  s.Serial.DataBits,
			Parity:    s.Serial.Parity,
			StopBits:  s.Serial.StopBits,
			Logger:    trace,
		}
		return func() (Source, error) {
			mb, err := pmodbus.New(mc)
			if err != nil {
				return nil, err
			}
			return mb, nil
		}, nil

	case cfg.KindLakeshore:
		loop := s.Loop
		return func() (Source, error) {
			lc, err := lakeshore.New(lakeshore.Config{Endpoint: s.Endpoint, Timeout: timeout})
			if err != nil {
				return nil, err
			}
			return lakeshoreSource{client: lc, loop: loop}, nil
		}, nil

	default:
		return nil, merry.Errorf("poller: unsupported source kind %q", s.Kind)
	}
}

// lakeshoreSource adapts the stream client to Source.
type lakeshoreSource struct {
	client *lakeshore.Client
	loop   int
}

func (s lakeshoreSource) ReadSetpoint(ctx context.Context) (float64, error) {
	return s.client.Setpoint(ctx, s.loop)
}

func (s lakeshoreSource) Close() error { return s.client.Close() }
