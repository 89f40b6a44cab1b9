// internal/writer/writer_test.go
package writer

import (
	"context"
	"errors"
	"testing"

	"github.com/tamzrod/excitation-controller/internal/controller"
)

// ---- fake endpoint client ----

type fakeEndpointClient struct {
	writes []writeCall
	fail   bool

	// last register write (status tests)
	lastRegsAddr uint16
	lastRegs     []uint16
}

type writeCall struct {
	unitID uint8
	addr   uint16
	regs   []uint16
}

func (f *fakeEndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if f.fail {
		return errors.New("write failed")
	}
	cp := append([]uint16(nil), regs...)
	f.writes = append(f.writes, writeCall{unitID: unitID, addr: addr, regs: cp})
	f.lastRegsAddr = addr
	f.lastRegs = cp
	return nil
}

// ---- fake instrument ----

type fakeInstrument struct {
	inputs []string
	codes  []int
}

func (f *fakeInstrument) SetExcitation(ctx context.Context, input string, code int) error {
	f.inputs = append(f.inputs, input)
	f.codes = append(f.codes, code)
	return nil
}

func twoTargetPlan() Plan {
	return Plan{
		ChannelID: "ch1",
		Targets: []TargetPlan{
			{Kind: "modbus", Endpoint: "plc", UnitID: 3, Register: 40},
			{Kind: "lakeshore", Endpoint: "ts", Input: "A"},
		},
	}
}

// ---- tests ----

func TestWriter_DeliversSelectedExcitation(t *testing.T) {
	mb := &fakeEndpointClient{}
	ls := &fakeInstrument{}

	w := New(twoTargetPlan(),
		map[string]endpointClient{"plc": mb},
		map[string]excitationSetter{"ts": ls},
	)

	out := controller.Output{Excitation: 7, Temperature: 122, Selected: true}
	if err := w.Write(context.Background(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mb.writes) != 1 {
		t.Fatalf("expected 1 modbus write, got %d", len(mb.writes))
	}
	if got := mb.writes[0]; got.unitID != 3 || got.addr != 40 || got.regs[0] != 7 {
		t.Fatalf("unexpected modbus write: %+v", got)
	}
	if len(ls.codes) != 1 || ls.codes[0] != 7 || ls.inputs[0] != "A" {
		t.Fatalf("unexpected instrument writes: %v %v", ls.inputs, ls.codes)
	}
}

func TestWriter_SkipsUnchangedCode(t *testing.T) {
	mb := &fakeEndpointClient{}
	w := New(twoTargetPlan(), map[string]endpointClient{"plc": mb}, map[string]excitationSetter{"ts": &fakeInstrument{}})

	out := controller.Output{Excitation: 4, Selected: true}
	_ = w.Write(context.Background(), out)
	_ = w.Write(context.Background(), out)

	if len(mb.writes) != 1 {
		t.Fatalf("expected a single write for an unchanged code, got %d", len(mb.writes))
	}

	out.Excitation = 5
	_ = w.Write(context.Background(), out)
	if len(mb.writes) != 2 {
		t.Fatalf("expected a write for a changed code, got %d", len(mb.writes))
	}
}

func TestWriter_FailedOutputWritesNothing(t *testing.T) {
	mb := &fakeEndpointClient{}
	ls := &fakeInstrument{}
	w := New(twoTargetPlan(), map[string]endpointClient{"plc": mb}, map[string]excitationSetter{"ts": ls})

	out := controller.Output{Excitation: 6, ErrorCode: 2, Defer: true}
	if err := w.Write(context.Background(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mb.writes) != 0 || len(ls.codes) != 0 {
		t.Fatalf("failed evaluation must not overwrite targets")
	}
}

func TestWriter_RetriesFailedTarget(t *testing.T) {
	mb := &fakeEndpointClient{fail: true}
	plan := Plan{ChannelID: "ch1", Targets: []TargetPlan{{Kind: "modbus", Endpoint: "plc", UnitID: 1, Register: 1}}}
	w := New(plan, map[string]endpointClient{"plc": mb}, nil)

	out := controller.Output{Excitation: 2, Selected: true}
	if err := w.Write(context.Background(), out); err == nil {
		t.Fatalf("expected error, got nil")
	}

	mb.fail = false
	if err := w.Write(context.Background(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mb.writes) != 1 {
		t.Fatalf("expected retry to write, got %d writes", len(mb.writes))
	}
}

func TestWriter_MissingClient(t *testing.T) {
	w := New(twoTargetPlan(), nil, nil)
	if err := w.Write(context.Background(), controller.Output{Excitation: 1, Selected: true}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
