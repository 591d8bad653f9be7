// internal/dcc/types.go
package dcc

import "fmt"

// Direction of travel for a speed command.
type Direction int8

const (
	Forward Direction = 1
	Reverse Direction = -1
)

func (d Direction) Valid() bool {
	return d == Forward || d == Reverse
}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("direction(%d)", int8(d))
	}
}

// Class identifies the kind of command held for an address.
// One pending packet exists per (Class, address).
type Class byte

const (
	ClassSpeed          Class = 'S'
	ClassFunctionGroup1 Class = 'F'
)

func (c Class) String() string {
	switch c {
	case ClassSpeed:
		return "speed"
	case ClassFunctionGroup1:
		return "fg1"
	default:
		return fmt.Sprintf("class(%q)", byte(c))
	}
}

// Key identifies a pending command.
type Key struct {
	Class   Class
	Address int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Class, k.Address)
}

// SpeedDirection is a 128-step speed and direction command.
type SpeedDirection struct {
	Address   int
	Direction Direction
	Speed     int
}

// FunctionGroup1 sets or clears one of F0-F4.
type FunctionGroup1 struct {
	Address int
	Index   int
	State   int
}
