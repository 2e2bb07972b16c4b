package mapper

import (
	vaulterrors "github.com/joe/vault-map/pkg/errors"
)

// Event is the interface implemented by all mapper events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// ScanComplete is emitted once the vault tree has been built.
type ScanComplete struct {
	Directories int
	Files       int
}

func (ScanComplete) isEvent() {}

// FileDegraded is emitted for every file listed with placeholder values.
type FileDegraded struct {
	Path string
	Kind vaulterrors.Kind
	Err  error
}

func (FileDegraded) isEvent() {}

// ListingWritten is emitted after each README.md is written.
type ListingWritten struct {
	Path string // vault-relative directory, empty for the root
}

func (ListingWritten) isEvent() {}

// IndexWritten is emitted after INDEX.md is written.
type IndexWritten struct {
	Path string
}

func (IndexWritten) isEvent() {}

// SnapshotWritten is emitted after vault_structure.json is written.
type SnapshotWritten struct {
	Path string
}

func (SnapshotWritten) isEvent() {}

// EventRecorder keeps every event it receives, in order.
type EventRecorder struct {
	Events []Event
}

// Emit records the event.
func (r *EventRecorder) Emit(event Event) {
	r.Events = append(r.Events, event)
}
