// internal/poller/modbus/client.go
package modbus

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/goburrow/modbus"
)

// WordOrder selects which register holds the high half of the float32.
type WordOrder string

const (
	WordOrderBig    WordOrder = "big"    // register N = high word
	WordOrderLittle WordOrder = "little" // register N = low word
)

// Client implements poller.Source over Modbus TCP or RTU.
// The setpoint is an IEEE-754 float32 spread over two holding registers.
type Client struct {
	handler handler
	client  modbus.Client

	register  uint16
	wordOrder WordOrder
}

// handler is the subset shared by TCP and RTU client handlers.
type handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// Config is minimal transport config.
type Config struct {
	Endpoint string // host:port (TCP) or serial device (RTU)
	RTU      bool
	UnitID   uint8
	Timeout  time.Duration

	Register  uint16
	WordOrder WordOrder

	// RTU serial settings
	BaudRate int
	DataBits int
	Parity   string
	StopBits int

	// Optional frame trace logger.
	Logger *log.Logger
}

// New creates a connected Modbus client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus source: endpoint required")
	}

	var h handler
	if cfg.RTU {
		rh := modbus.NewRTUClientHandler(cfg.Endpoint)
		rh.SlaveId = cfg.UnitID
		rh.Timeout = cfg.Timeout
		rh.BaudRate = cfg.BaudRate
		rh.DataBits = cfg.DataBits
		rh.Parity = cfg.Parity
		rh.StopBits = cfg.StopBits
		rh.Logger = cfg.Logger
		h = rh
	} else {
		th := modbus.NewTCPClientHandler(cfg.Endpoint)
		th.SlaveId = cfg.UnitID
		th.Timeout = cfg.Timeout
		th.Logger = cfg.Logger
		h = th
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus source: connect %s: %w", cfg.Endpoint, err)
	}

	order := cfg.WordOrder
	if order == "" {
		order = WordOrderBig
	}

	return &Client{
		handler:   h,
		client:    modbus.NewClient(h),
		register:  cfg.Register,
		wordOrder: order,
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- poller.Source interface ----

// ReadSetpoint reads two holding registers and decodes the float32 setpoint.
// The goburrow client is synchronous; ctx is only checked before the request.
func (c *Client) ReadSetpoint(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	raw, err := c.client.ReadHoldingRegisters(c.register, 2)
	if err != nil {
		return 0, fmt.Errorf("modbus source: read register %d: %w", c.register, err)
	}

	v, err := DecodeFloat32(raw, c.wordOrder)
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

// ---- helpers (pure geometry) ----

// DecodeFloat32 decodes 4 payload bytes (two big-endian registers) into a float32.
func DecodeFloat32(raw []byte, order WordOrder) (float32, error) {
	if len(raw) != 4 {
		return 0, fmt.Errorf("modbus source: expected 4 bytes, got %d", len(raw))
	}

	r0 := uint32(raw[0])<<8 | uint32(raw[1])
	r1 := uint32(raw[2])<<8 | uint32(raw[3])

	var bits uint32
	switch order {
	case WordOrderLittle:
		bits = r1<<16 | r0
	default:
		bits = r0<<16 | r1
	}

	v := math.Float32frombits(bits)
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0, fmt.Errorf("modbus source: non-finite setpoint %#08x", bits)
	}
	return v, nil
}
