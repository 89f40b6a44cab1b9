// internal/status/encode.go
package status

import "math"

// ExcitationNone is the register value for "no excitation applied yet".
const ExcitationNone uint16 = 0xFFFF

// Encode converts a Snapshot into the live slots of a status block.
// Layout is protocol-locked. Device name slots are left zero.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError
	regs[SlotDefer] = boolReg(s.Defer)
	regs[SlotExcitation] = ExcitationReg(s.Excitation)
	regs[SlotThresholdHi], regs[SlotThresholdLo] = Float32Regs(s.Threshold)

	return regs
}

// ExcitationReg maps an excitation code to its register value.
func ExcitationReg(code int) uint16 {
	if code < 0 || code > 0xFFFE {
		return ExcitationNone
	}
	return uint16(code)
}

// Float32Regs splits v into big-endian (hi, lo) words.
func Float32Regs(v float32) (uint16, uint16) {
	bits := math.Float32bits(v)
	return uint16(bits >> 16), uint16(bits)
}

// Float32FromRegs is the inverse of Float32Regs.
func Float32FromRegs(hi, lo uint16) float32 {
	return math.Float32frombits(uint32(hi)<<16 | uint32(lo))
}

func boolReg(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
