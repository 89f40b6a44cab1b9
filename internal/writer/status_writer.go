// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/excitation-controller/internal/status"
)

// StatusWriter is the delivery-only contract for channel status.
// It receives a snapshot and writes it verbatim.
// No logic, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// channelStatusWriter is the concrete implementation used by the runner.
type channelStatusWriter struct {
	plan *StatusPlan
	cli  endpointClient

	needFull bool
	last     []uint16
	nameRegs []uint16
}

// NewStatusWriter builds a status writer if status is enabled for the channel.
// If plan.Status is nil, status is disabled.
func NewStatusWriter(plan Plan, clients map[string]endpointClient) (*channelStatusWriter, bool) {
	if plan.Status == nil {
		return nil, false
	}

	sp := plan.Status

	return &channelStatusWriter{
		plan:     sp,
		cli:      clients[sp.Endpoint],
		needFull: true, // full re-assert on first successful write
		nameRegs: encodeDeviceNameRegs(sp.DeviceName),
	}, true
}

// liveSpan is one group of slots written together.
type liveSpan struct {
	name  string
	start int
	n     int
}

// Threshold hi/lo are written as one span so readers never see a torn float.
var liveSpans = []liveSpan{
	{"health", status.SlotHealthCode, 1},
	{"last_error", status.SlotLastErrorCode, 1},
	{"seconds_in_error", status.SlotSecondsInError, 1},
	{"defer", status.SlotDefer, 1},
	{"excitation", status.SlotExcitation, 1},
	{"threshold", status.SlotThresholdHi, 2},
}

// WriteStatus delivers a status snapshot into status memory.
// On any write failure, the next successful call will re-assert the full block.
func (sw *channelStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	baseAddr := sw.baseAddr()
	regs := status.Encode(s)

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		full := sw.fullBlockRegs(regs)

		if err := sw.cli.WriteRegisters(sw.plan.UnitID, baseAddr, full); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = regs
		return nil
	}

	var errs []string

	for _, sp := range liveSpans {
		if equalRegs(sw.last[sp.start:sp.start+sp.n], regs[sp.start:sp.start+sp.n]) {
			continue
		}

		if err := sw.cli.WriteRegisters(
			sw.plan.UnitID,
			baseAddr+uint16(sp.start),
			regs[sp.start:sp.start+sp.n],
		); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", sp.start, sp.name, err))
			continue
		}
		copy(sw.last[sp.start:sp.start+sp.n], regs[sp.start:sp.start+sp.n])
	}

	if len(errs) > 0 {
		// Any partial failure leaves the block unknown; re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *channelStatusWriter) baseAddr() uint16 {
	// Each channel owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}

func (sw *channelStatusWriter) fullBlockRegs(live []uint16) []uint16 {
	regs := make([]uint16, status.SlotsPerDevice)
	copy(regs, live)

	// Reserved slots are left as zero.

	// Device name always lives at the end of the block
	for i := 0; i < status.SlotDeviceNameSlots && i < len(sw.nameRegs); i++ {
		regs[status.SlotDeviceNameStart+i] = sw.nameRegs[i]
	}

	return regs
}

func equalRegs(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// encodeDeviceNameRegs packs up to 16 ASCII characters into 8 uint16 registers.
// Each register stores two ASCII bytes in big-endian order.
func encodeDeviceNameRegs(name string) []uint16 {
	out := make([]uint16, status.SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > status.DeviceNameMaxChars {
		b = b[:status.DeviceNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < status.DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
