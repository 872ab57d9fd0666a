// Package events carries the structured events emitted by the stores.
// Stores never depend on an observer being present.
package events

import (
	"sync"

	"github.com/rs/zerolog"
)

const (
	OpInstall          = "install"
	OpUpdate           = "update"
	OpClear            = "clear"
	OpPut              = "put"
	OpFree             = "free"
	OpAllocationFailed = "allocation_failed"
)

type Event struct {
	Op       string
	Store    string
	Key      string
	Bucket   int
	Value    int
	Replaced bool
	Count    int
}

type Observer func(e Event)

// Nop discards every event
func Nop(Event) {}

// Emit calls o with e when o is not nil
func (o Observer) Emit(e Event) {
	if o == nil {
		return
	}
	o(e)
}

// Log writes one structured line per event at debug level, except allocation
// failures which are warnings.
func Log(l zerolog.Logger) Observer {
	return func(e Event) {
		entry := l.Debug()
		if e.Op == OpAllocationFailed {
			entry = l.Warn()
		}
		entry.
			Str("op", e.Op).
			Str("store", e.Store).
			Str("key", e.Key).
			Int("bucket", e.Bucket).
			Int("value", e.Value).
			Bool("replaced", e.Replaced).
			Int("count", e.Count).
			Msg("store event")
	}
}

// Recorder keeps events in memory, mostly for tests
type Recorder struct {
	mutex  sync.Mutex
	events []Event
}

func (r *Recorder) Observer() Observer {
	return func(e Event) {
		r.mutex.Lock()
		r.events = append(r.events, e)
		r.mutex.Unlock()
	}
}

func (r *Recorder) Events() []Event {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	result := make([]Event, len(r.events))
	copy(result, r.events)
	return result
}

func (r *Recorder) Ops() []string {
	ops := []string{}
	for _, e := range r.Events() {
		ops = append(ops, e.Op)
	}
	return ops
}
