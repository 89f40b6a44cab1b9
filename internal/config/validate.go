// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/ansel1/merry"

	"github.com/tamzrod/excitation-controller/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return merry.New("config: nil")
	}

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return merry.Errorf("logging: unknown level %q", cfg.Logging.Level)
	}

	if len(cfg.Controller.Channels) == 0 {
		return merry.New("controller: at least one channel required")
	}

	// ------------------------------------------------------------
	// PER-CHANNEL VALIDATION
	// ------------------------------------------------------------

	ids := make(map[string]struct{})

	for _, c := range cfg.Controller.Channels {
		if c.ID == "" {
			return merry.New("channel: id required")
		}
		if _, dup := ids[c.ID]; dup {
			return merry.Errorf("channel %q: duplicate id", c.ID)
		}
		ids[c.ID] = struct{}{}

		if c.ThresholdFile == "" {
			return merry.Errorf("channel %q: threshold_file required", c.ID)
		}
		if c.Poll.IntervalMs <= 0 {
			return merry.Errorf("channel %q: poll.interval_ms must be > 0", c.ID)
		}

		if err := validateSource(c.Source); err != nil {
			return merry.Prependf(err, "channel %q: source", c.ID)
		}

		for i, t := range c.Targets {
			if err := validateTarget(t); err != nil {
				return merry.Prependf(err, "channel %q: target %d", c.ID, i)
			}
		}

		if c.Status != nil {
			if c.Status.Endpoint == "" {
				return merry.Errorf("channel %q: status.endpoint required", c.ID)
			}
			if int(c.Status.Slot)*status.SlotsPerDevice+status.SlotsPerDevice-1 > 0xFFFF {
				return merry.Errorf("channel %q: status.slot %d exceeds register space", c.ID, c.Status.Slot)
			}
			// device_name sanity (ASCII only)
			for i := 0; i < len(c.Status.DeviceName); i++ {
				if c.Status.DeviceName[i] > 0x7F {
					return merry.Errorf(
						"channel %q: device_name must contain ASCII characters only",
						c.ID,
					)
				}
			}
		}
	}

	// ------------------------------------------------------------
	// STATUS SLOT COLLISIONS
	// ------------------------------------------------------------

	// key = endpoint | unit_id | slot
	statusOwner := make(map[string]string)

	for _, c := range cfg.Controller.Channels {
		if c.Status == nil {
			continue
		}

		key := fmt.Sprintf("%s|%d|%d", c.Status.Endpoint, c.Status.UnitID, c.Status.Slot)

		if prev, exists := statusOwner[key]; exists {
			return merry.Errorf(
				"status slot collision: endpoint=%s unit_id=%d slot=%d used by channels %q and %q",
				c.Status.Endpoint,
				c.Status.UnitID,
				c.Status.Slot,
				prev,
				c.ID,
			)
		}
		statusOwner[key] = c.ID
	}

	// ------------------------------------------------------------
	// EXCITATION TARGET COLLISIONS
	// ------------------------------------------------------------

	// key = kind | endpoint | unit_id | register   (modbus)
	//       kind | endpoint | input               (lakeshore)
	targetOwner := make(map[string]string)

	for _, c := range cfg.Controller.Channels {
		for _, t := range c.Targets {
			var key string
			switch t.Kind {
			case KindModbus:
				key = fmt.Sprintf("%s|%s|%d|%d", t.Kind, t.Endpoint, t.UnitID, t.Register)
			case KindLakeshore:
				key = fmt.Sprintf("%s|%s|%s", t.Kind, t.Endpoint, t.Input)
			}

			if prev, exists := targetOwner[key]; exists && prev != c.ID {
				return merry.Errorf(
					"excitation target collision: %s used by channels %q and %q",
					key,
					prev,
					c.ID,
				)
			}
			targetOwner[key] = c.ID
		}
	}

	return nil
}

func validateSource(s SourceConfig) error {
	if s.Endpoint == "" {
		return merry.New("endpoint required")
	}
	if s.TimeoutMs < 0 {
		return merry.New("timeout_ms must be >= 0")
	}

	switch s.Kind {
	case KindModbus, KindModbusRTU:
		switch s.WordOrder {
		case "", "big", "little":
		default:
			return merry.Errorf("unknown word_order %q", s.WordOrder)
		}
		if s.Register == 0xFFFF {
			return merry.New("register must leave room for two registers")
		}
		if s.Kind == KindModbusRTU {
			switch s.Serial.Parity {
			case "", "N", "E", "O":
			default:
				return merry.Errorf("unknown serial parity %q", s.Serial.Parity)
			}
		}
	case KindLakeshore:
		if s.Loop < 1 || s.Loop > 2 {
			return merry.Errorf("loop must be 1 or 2, got %d", s.Loop)
		}
	default:
		return merry.Errorf("unknown kind %q", s.Kind)
	}
	return nil
}

func validateTarget(t TargetConfig) error {
	if t.Endpoint == "" {
		return merry.New("endpoint required")
	}
	if t.TimeoutMs < 0 {
		return merry.New("timeout_ms must be >= 0")
	}

	switch t.Kind {
	case KindModbus:
	case KindLakeshore:
		switch t.Input {
		case "A", "B", "C", "D":
		default:
			return merry.Errorf("input must be one of A-D, got %q", t.Input)
		}
	default:
		return merry.Errorf("unknown kind %q", t.Kind)
	}
	return nil
}
