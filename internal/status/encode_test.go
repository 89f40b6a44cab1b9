// internal/status/encode_test.go
package status

import "testing"

func TestEncode_Layout(t *testing.T) {
	regs := Encode(Snapshot{
		Health:         HealthError,
		LastErrorCode:  2,
		SecondsInError: 7,
		Defer:          true,
		Excitation:     4,
		Threshold:      122.5,
	})

	if len(regs) != SlotsPerDevice {
		t.Fatalf("expected %d regs, got %d", SlotsPerDevice, len(regs))
	}
	if regs[SlotHealthCode] != HealthError || regs[SlotLastErrorCode] != 2 || regs[SlotSecondsInError] != 7 {
		t.Fatalf("live slots wrong: %v", regs[:3])
	}
	if regs[SlotDefer] != 1 || regs[SlotExcitation] != 4 {
		t.Fatalf("defer/excitation wrong: %v", regs[SlotDefer:SlotExcitation+1])
	}
	if got := Float32FromRegs(regs[SlotThresholdHi], regs[SlotThresholdLo]); got != 122.5 {
		t.Fatalf("threshold round trip: got %g", got)
	}
	for i := SlotReservedStart; i <= SlotReservedEnd; i++ {
		if regs[i] != 0 {
			t.Fatalf("reserved slot %d not zero", i)
		}
	}
}

func TestEncode_InitialSnapshot(t *testing.T) {
	regs := Encode(Initial())
	if regs[SlotHealthCode] != HealthUnknown {
		t.Fatalf("health: got %d", regs[SlotHealthCode])
	}
	if regs[SlotExcitation] != ExcitationNone {
		t.Fatalf("excitation: got %#x", regs[SlotExcitation])
	}
	if regs[SlotDefer] != 1 {
		t.Fatalf("initial snapshot must defer")
	}
}

func TestFloat32Regs_KnownValue(t *testing.T) {
	// 1.0f = 0x3F800000
	hi, lo := Float32Regs(1)
	if hi != 0x3F80 || lo != 0 {
		t.Fatalf("got %#04x %#04x", hi, lo)
	}
}
