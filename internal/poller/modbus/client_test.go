// internal/poller/modbus/client_test.go
package modbus

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goburrow/modbus"
	"github.com/google/go-cmp/cmp"
)

func TestUnpackRegisters(t *testing.T) {
	got := UnpackRegisters([]byte{0x00, 0x32, 0x00, 0x01, 0x00, 0x11, 0xFF})
	if diff := cmp.Diff([]uint16{50, 1, 0x11}, got); diff != "" {
		t.Fatalf("registers (-want +got):\n%s", diff)
	}
}

func TestTranslate_ModbusException(t *testing.T) {
	err := translate(fmt.Errorf("read: %w", &modbus.ModbusError{FunctionCode: 0x83, ExceptionCode: 2}))

	var ex *ExceptionError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExceptionError, got %T", err)
	}
	if ex.Code() != 2 || ex.Function != 0x83 {
		t.Fatalf("unexpected exception %+v", ex)
	}

	plain := errors.New("timeout")
	if translate(plain) != plain {
		t.Fatalf("non-exception errors must pass through")
	}
}

func TestNew_RequiresEndpoint(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
