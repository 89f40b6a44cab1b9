// internal/writer/builder.go
package writer

import (
	"log"
	"time"

	"github.com/ansel1/merry"

	cfg "github.com/tamzrod/excitation-controller/internal/config"
	"github.com/tamzrod/excitation-controller/internal/lakeshore"
	wmodbus "github.com/tamzrod/excitation-controller/internal/writer/modbus"
)

// BuildPlan converts one channel config into a writer Plan.
// Assumes config has already passed validation.
func BuildPlan(c cfg.ChannelConfig) (Plan, error) {
	if c.ID == "" {
		return Plan{}, merry.New("writer: channel.id required")
	}

	plan := Plan{ChannelID: c.ID}

	for _, t := range c.Targets {
		plan.Targets = append(plan.Targets, TargetPlan{
			Kind:     t.Kind,
			Endpoint: t.Endpoint,
			Timeout:  time.Duration(t.TimeoutMs) * time.Millisecond,
			UnitID:   t.UnitID,
			Register: t.Register,
			Input:    t.Input,
		})
	}

	if c.Status != nil {
		plan.Status = &StatusPlan{
			Endpoint:   c.Status.Endpoint,
			UnitID:     c.Status.UnitID,
			BaseSlot:   c.Status.Slot,
			DeviceName: c.Status.DeviceName,
			Timeout:    time.Duration(c.Status.TimeoutMs) * time.Millisecond,
		}
	}

	return plan, nil
}

// Clients holds the connections one channel writes through.
type Clients struct {
	Modbus      map[string]endpointClient
	Instruments map[string]excitationSetter
}

// BuildClients creates one Modbus TCP client per unique Modbus endpoint
// (targets and status) and one stream client per Lakeshore endpoint.
func BuildClients(plan Plan, trace *log.Logger) (Clients, func() error, error) {
	mbTimeouts := map[string]time.Duration{}
	lsTimeouts := map[string]time.Duration{}

	for _, t := range plan.Targets {
		switch t.Kind {
		case cfg.KindModbus:
			mbTimeouts[t.Endpoint] = t.Timeout
		case cfg.KindLakeshore:
			lsTimeouts[t.Endpoint] = t.Timeout
		}
	}
	if plan.Status != nil {
		if _, ok := mbTimeouts[plan.Status.Endpoint]; !ok {
			mbTimeouts[plan.Status.Endpoint] = plan.Status.Timeout
		}
	}

	out := Clients{
		Modbus:      make(map[string]endpointClient),
		Instruments: make(map[string]excitationSetter),
	}
	var closers []func() error

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	for endpoint, timeout := range mbTimeouts {
		c, err := wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: endpoint,
			Timeout:  timeout,
			Logger:   trace,
		})
		if err != nil {
			_ = closeAll()
			return Clients{}, nil, merry.Prependf(err, "writer: connect %s", endpoint)
		}
		out.Modbus[endpoint] = c
		closers = append(closers, c.Close)
	}

	for endpoint, timeout := range lsTimeouts {
		c, err := lakeshore.New(lakeshore.Config{Endpoint: endpoint, Timeout: timeout})
		if err != nil {
			_ = closeAll()
			return Clients{}, nil, err
		}
		out.Instruments[endpoint] = c
		closers = append(closers, c.Close)
	}

	return out, closeAll, nil
}
