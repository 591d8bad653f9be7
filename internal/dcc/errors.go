// internal/dcc/errors.go
package dcc

import "errors"

var (
	ErrInvalidAddress   = errors.New("dcc: address out of range (1-0x27FF)")
	ErrInvalidSpeed     = errors.New("dcc: speed out of range (0-127)")
	ErrInvalidDirection = errors.New("dcc: direction must be forward or reverse")
	ErrInvalidFunction  = errors.New("dcc: function index out of range (0-4)")
	ErrInvalidState     = errors.New("dcc: function state must be 0 or 1")
)
