// internal/status/snapshot.go
package status

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Power         bool
	Health        uint16
	LastErrorCode uint16
	Entries       int
	Sent          uint64
	Idle          uint64
	Dropped       uint64
}
