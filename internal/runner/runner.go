// internal/runner/runner.go
package runner

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/excitation-controller/internal/controller"
	"github.com/tamzrod/excitation-controller/internal/excitation"
	"github.com/tamzrod/excitation-controller/internal/poller"
	"github.com/tamzrod/excitation-controller/internal/status"
	"github.com/tamzrod/excitation-controller/internal/threshold"
	"github.com/tamzrod/excitation-controller/internal/writer"
)

// Channel is everything the runner needs for one channel.
type Channel struct {
	ID            string
	ThresholdFile string

	Writer writer.Writer
	Status writer.StatusWriter // nil => status disabled

	Log logrus.FieldLogger
}

// Runner owns the per-channel state: the last applied excitation and
// threshold, and the status snapshot.
type Runner struct {
	ch   Channel
	prev controller.Output
	snap status.Snapshot
}

func New(ch Channel) *Runner {
	if ch.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		ch.Log = l
	}
	return &Runner{
		ch: ch,
		prev: controller.Output{
			Excitation:  excitation.Invalid,
			Temperature: threshold.InvalidTemperature,
		},
		snap: status.Initial(),
	}
}

// Applied returns the currently applied excitation and threshold.
func (r *Runner) Applied() (int, float64) {
	return r.prev.Excitation, r.prev.Temperature
}

// Snapshot returns the current status snapshot.
func (r *Runner) Snapshot() status.Snapshot { return r.snap }

// Start re-asserts the full status block (identity) if enabled.
func (r *Runner) Start() {
	r.writeStatus("status write failed on start")
}

// Handle processes one poll reading.
// Evaluation: path + setpoint + previous values -> controller.Apply.
func (r *Runner) Handle(ctx context.Context, rd poller.Reading) {
	if rd.Err != nil {
		r.ch.Log.WithError(rd.Err).Warn("setpoint read failed")
		r.setError(errorCode(rd.Err, status.ErrorCodeSourceUnreachable), true)
		return
	}

	out := controller.Apply(controller.Input{
		Path:            r.ch.ThresholdFile,
		Setpoint:        rd.Setpoint,
		PrevExcitation:  r.prev.Excitation,
		PrevTemperature: r.prev.Temperature,
	}, r.ch.Log)

	// --- excitation delivery ---
	if r.ch.Writer != nil {
		if err := r.ch.Writer.Write(ctx, out); err != nil {
			// Targets may still hold the old code; keep it applied and retry next poll.
			r.ch.Log.WithError(err).WithField("excitation", excitation.Label(out.Excitation)).
				Error("excitation write failed")
			r.setError(errorCode(err, status.ErrorCodeDeliveryFailed), true)
			return
		}
	}

	if out.Selected {
		if out.Excitation != r.prev.Excitation {
			r.ch.Log.WithFields(logrus.Fields{
				"setpoint":   rd.Setpoint,
				"threshold":  out.Temperature,
				"excitation": excitation.Label(out.Excitation),
			}).Info("excitation changed")
		}
		r.prev = out
		r.setOK(out)
		return
	}

	r.setError(out.ErrorCode, out.Defer)
}

// Tick advances seconds-in-error (1 Hz) while not healthy.
func (r *Runner) Tick() {
	if r.snap.Health == status.HealthOK {
		return
	}
	if r.snap.SecondsInError >= status.SecondsInErrorMax {
		return
	}
	r.snap.SecondsInError++
	r.writeStatus("status seconds tick write failed")
}

// Run consumes readings until ctx is done.
func (r *Runner) Run(ctx context.Context, in <-chan poller.Reading) {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	r.Start()

	for {
		select {
		case <-ctx.Done():
			return
		case rd, ok := <-in:
			if !ok {
				return
			}
			r.Handle(ctx, rd)
		case <-secTicker.C:
			r.Tick()
		}
	}
}

// ---- status transitions ----

func (r *Runner) setOK(out controller.Output) {
	next := r.snap
	next.Health = status.HealthOK
	next.LastErrorCode = 0
	next.SecondsInError = 0
	next.Defer = false
	next.Excitation = out.Excitation
	next.Threshold = float32(out.Temperature)
	r.publish(next)
}

// setError keeps the applied values; seconds_in_error increments on the ticker only.
func (r *Runner) setError(code uint16, deferred bool) {
	next := r.snap
	next.Health = status.HealthError
	next.LastErrorCode = code
	next.Defer = deferred
	r.publish(next)
}

func (r *Runner) publish(next status.Snapshot) {
	if next == r.snap {
		return
	}
	r.snap = next
	r.writeStatus("status write failed")
}

func (r *Runner) writeStatus(msg string) {
	if r.ch.Status == nil {
		return
	}
	if err := r.ch.Status.WriteStatus(r.snap); err != nil {
		r.ch.Log.WithError(err).Warn(msg)
	}
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns fallback.
func errorCode(err error, fallback uint16) uint16 {
	if err == nil {
		return 0
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	return fallback
}
