// internal/writer/types.go
package writer

import (
	"context"
	"time"

	"github.com/tamzrod/excitation-controller/internal/controller"
)

// TargetPlan is one excitation command destination.
type TargetPlan struct {
	Kind     string // modbus | lakeshore
	Endpoint string
	Timeout  time.Duration

	UnitID   uint8  // modbus
	Register uint16 // modbus

	Input string // lakeshore
}

// StatusPlan is the status block destination of one channel.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
	Timeout    time.Duration
}

// Plan is the fully-built write plan for one channel.
type Plan struct {
	ChannelID string
	Targets   []TargetPlan
	Status    *StatusPlan // nil => status disabled
}

// Writer delivers evaluation outputs to excitation targets.
type Writer interface {
	Write(ctx context.Context, out controller.Output) error
}
