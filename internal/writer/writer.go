// internal/writer/writer.go
package writer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/excitation-controller/internal/config"
	"github.com/tamzrod/excitation-controller/internal/controller"
)

// endpointClient is the exact contract the writer uses for Modbus endpoints.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// excitationSetter is the contract for instruments driven directly over their stream port.
type excitationSetter interface {
	SetExcitation(ctx context.Context, input string, code int) error
}

// target is one resolved destination.
type target struct {
	plan TargetPlan
	mb   endpointClient
	ls   excitationSetter
}

func (t target) write(ctx context.Context, code int) error {
	switch t.plan.Kind {
	case config.KindModbus:
		if t.mb == nil {
			return fmt.Errorf("missing client for endpoint %s", t.plan.Endpoint)
		}
		return t.mb.WriteRegisters(t.plan.UnitID, t.plan.Register, []uint16{uint16(code)})
	case config.KindLakeshore:
		if t.ls == nil {
			return fmt.Errorf("missing instrument for endpoint %s", t.plan.Endpoint)
		}
		return t.ls.SetExcitation(ctx, t.plan.Input, code)
	default:
		return fmt.Errorf("unsupported target kind %q", t.plan.Kind)
	}
}

type writerImpl struct {
	plan    Plan
	targets []target

	// last code delivered per target; -1 = never written / unknown
	last []int
}

func New(
	plan Plan,
	clients map[string]endpointClient,
	instruments map[string]excitationSetter,
) Writer {
	w := &writerImpl{plan: plan}

	for _, tp := range plan.Targets {
		w.targets = append(w.targets, target{
			plan: tp,
			mb:   clients[tp.Endpoint],
			ls:   instruments[tp.Endpoint],
		})
		w.last = append(w.last, -1)
	}
	return w
}

// Write delivers the selected excitation to every target whose last
// delivered code differs. Failed outputs are never delivered: the targets
// keep the previously applied excitation.
// A failed target is retried on the next call.
func (w *writerImpl) Write(ctx context.Context, out controller.Output) error {
	if !out.Selected {
		return nil
	}

	var errs []string

	for i, t := range w.targets {
		if w.last[i] == out.Excitation {
			continue
		}

		if err := t.write(ctx, out.Excitation); err != nil {
			w.last[i] = -1
			errs = append(errs, fmt.Sprintf(
				"writer: channel=%s kind=%s ep=%s code=%d err=%v",
				w.plan.ChannelID, t.plan.Kind, t.plan.Endpoint, out.Excitation, err,
			))
			continue
		}
		w.last[i] = out.Excitation
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}

	return nil
}
