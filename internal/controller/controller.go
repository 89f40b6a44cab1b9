// internal/controller/controller.go
package controller

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/excitation-controller/internal/threshold"
)

// ErrorCodeUnknown is published for failures that carry no classification.
const ErrorCodeUnknown uint16 = 0xFFFF

// Input is everything one evaluation needs from the host.
type Input struct {
	Path     string
	Setpoint float64

	// Previously applied values, returned unchanged on failure.
	PrevExcitation  int
	PrevTemperature float64
}

// Output is what the host publishes after one evaluation.
type Output struct {
	Excitation  int
	Temperature float64
	ErrorCode   uint16

	// Defer tells the control loop not to act on the outputs.
	Defer bool

	// Selected is true when Excitation/Temperature come from the file.
	Selected bool
}

// Apply evaluates the threshold file for in.Setpoint.
// Stateless: the file is re-read on every call.
// On any failure the previous values are kept, Defer is set and the
// failure is logged with its kind and path.
func Apply(in Input, log logrus.FieldLogger) Output {
	out := Output{
		Excitation:  in.PrevExcitation,
		Temperature: in.PrevTemperature,
	}

	pair, err := threshold.Evaluate(in.Path, in.Setpoint)
	if err != nil {
		out.ErrorCode = codeOf(err)
		out.Defer = true

		if log != nil {
			log.WithFields(logrus.Fields{
				"path":     in.Path,
				"setpoint": in.Setpoint,
				"kind":     kindOf(err).String(),
			}).WithError(err).Warn("threshold evaluation failed; keeping previous excitation")
		}
		return out
	}

	out.Excitation = pair.Excitation
	out.Temperature = pair.Temperature
	out.Selected = true

	if log != nil {
		log.WithFields(logrus.Fields{
			"path":       in.Path,
			"setpoint":   in.Setpoint,
			"threshold":  pair.Temperature,
			"excitation": pair.Label(),
		}).Debug("threshold selected")
	}
	return out
}

func codeOf(err error) uint16 {
	var e *threshold.Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return ErrorCodeUnknown
}

func kindOf(err error) threshold.Kind {
	var e *threshold.Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return threshold.KindNone
}
