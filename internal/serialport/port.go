// internal/serialport/port.go

// Package serialport opens the serial link used by the serial engine and the
// modem-control booster lines.
package serialport

import (
	"errors"
	"io"

	"go.bug.st/serial"
)

// Port is the subset of a serial port the station uses.
type Port interface {
	io.ReadWriteCloser
	SetDTR(dtr bool) error
	SetRTS(rts bool) error
}

// Opener opens a port at path with the given mode.
type Opener func(path string, mode *serial.Mode) (Port, error)

// SystemOpener opens a real serial device.
func SystemOpener(path string, mode *serial.Mode) (Port, error) {
	return serial.Open(path, mode)
}

// Open normalizes opts and opens the port through opener.
// A nil opener uses SystemOpener.
func Open(opts PortOptions, opener Opener) (Port, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	if opts.Port == "" {
		return nil, errors.New("serialport: port path required")
	}
	if opener == nil {
		opener = SystemOpener
	}
	return opener(opts.Port, mode)
}
