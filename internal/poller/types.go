// internal/poller/types.go
package poller

import "time"

// Reading is a snapshot produced by one poll cycle.
type Reading struct {
	ChannelID string
	At        time.Time

	Setpoint float64
	Err      error // non-nil means the poll cycle failed
}
