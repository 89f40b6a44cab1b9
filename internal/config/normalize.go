// internal/config/normalize.go
package config

import "github.com/tamzrod/excitation-controller/internal/status"

// DefaultTimeoutMs applies to sources, targets and status endpoints without a timeout.
const DefaultTimeoutMs = 1000

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	for ci := range cfg.Controller.Channels {
		c := &cfg.Controller.Channels[ci]

		if c.Source.TimeoutMs == 0 {
			c.Source.TimeoutMs = DefaultTimeoutMs
		}
		if c.Source.WordOrder == "" {
			c.Source.WordOrder = "big"
		}

		if c.Source.Kind == KindModbusRTU {
			s := &c.Source.Serial
			if s.BaudRate == 0 {
				s.BaudRate = 9600
			}
			if s.DataBits == 0 {
				s.DataBits = 8
			}
			if s.Parity == "" {
				s.Parity = "N"
			}
			if s.StopBits == 0 {
				s.StopBits = 1
			}
		}

		for ti := range c.Targets {
			if c.Targets[ti].TimeoutMs == 0 {
				c.Targets[ti].TimeoutMs = DefaultTimeoutMs
			}
		}

		// ------------------------------------------------------------
		// STATUS BLOCK NORMALIZATION (OPT-IN)
		// ------------------------------------------------------------

		if c.Status == nil {
			continue
		}

		if c.Status.TimeoutMs == 0 {
			c.Status.TimeoutMs = DefaultTimeoutMs
		}

		// Normalize device_name:
		// - ASCII already validated
		// - Truncate to the status block capacity
		if len(c.Status.DeviceName) > status.DeviceNameMaxChars {
			c.Status.DeviceName = c.Status.DeviceName[:status.DeviceNameMaxChars]
		}
	}
}
