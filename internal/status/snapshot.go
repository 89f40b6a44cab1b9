// internal/status/snapshot.go
package status

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16
	Defer          bool

	// Applied values (previous values while in error).
	// Excitation is -1 until a threshold has been applied.
	Excitation int
	Threshold  float32
}

// Initial is the snapshot published before the first evaluation.
func Initial() Snapshot {
	return Snapshot{
		Health:     HealthUnknown,
		Defer:      true,
		Excitation: -1,
	}
}
