// internal/monitoring/logger.go
package monitoring

import "log"

// Logf receives station diagnostics that have no caller to return to:
// dropped packets and fatal stops from the scheduler, serial link control
// failures, booster transitions and status block write errors.
// cmd/dccstation leaves it on log.Printf.
var Logf func(format string, v ...any) = log.Printf

// SetLogger redirects station diagnostics, typically to capture them in a
// test. nil discards them.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}
