// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"
)

// Client implements poller.Client using Modbus TCP.
// Geometry-only: it reads raw registers and unpacks them.
type Client struct {
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// ExceptionError is a Modbus exception reply from the panel.
type ExceptionError struct {
	Function  byte
	Exception byte
}

func (e *ExceptionError) Error() string {
	return fmt.Sprintf("modbus exception: fc=%d code=%d", e.Function, e.Exception)
}

// Code returns the raw exception code.
func (e *ExceptionError) Code() uint16 { return uint16(e.Exception) }

// New creates a connected Modbus TCP client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus client: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- poller.Client interface ----

func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}
	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, translate(err)
	}
	if len(raw) != int(qty)*2 {
		return nil, fmt.Errorf("modbus: read-registers payload %d bytes, want %d", len(raw), int(qty)*2)
	}
	return UnpackRegisters(raw), nil
}

func translate(err error) error {
	var me *modbus.ModbusError
	if errors.As(err, &me) {
		return &ExceptionError{Function: me.FunctionCode, Exception: me.ExceptionCode}
	}
	return err
}

// ---- helpers (pure geometry) ----

// UnpackRegisters decodes big-endian register bytes.
func UnpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
