package hashindex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fulldump/chainkv/events"
)

const DefaultBuckets = 100

var ErrAllocation = errors.New("allocation error: no storage for a new entry")

type Entry struct {
	name       string
	definition string
	next       *Entry
}

func (e *Entry) Name() string {
	return e.name
}

func (e *Entry) Definition() string {
	return e.definition
}

// Triple is the diagnostic view of one entry
type Triple struct {
	Bucket     int    `json:"bucket"`
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

type Stats struct {
	Buckets      int `json:"buckets"`
	UsedBuckets  int `json:"used_buckets"`
	Entries      int `json:"entries"`
	LongestChain int `json:"longest_chain"`
}

type HashIndexOptions struct {
	Name       string
	Buckets    int // fixed for the lifetime of the index
	MaxEntries int // 0 means unlimited
	Observer   events.Observer
}

// HashIndex maps names to definitions using a fixed number of buckets with
// separate chaining. It is not safe for concurrent use.
type HashIndex struct {
	buckets []*Entry
	entries int
	options *HashIndexOptions
}

func New(options *HashIndexOptions) *HashIndex {
	if options == nil {
		options = &HashIndexOptions{}
	}
	if options.Buckets <= 0 {
		options.Buckets = DefaultBuckets
	}
	return &HashIndex{
		buckets: make([]*Entry, options.Buckets),
		options: options,
	}
}

func (h *HashIndex) Buckets() int {
	return len(h.buckets)
}

func (h *HashIndex) Len() int {
	return h.entries
}

func (h *HashIndex) Hash(key string) int {
	return Hash(key, len(h.buckets))
}

func (h *HashIndex) Lookup(key string) *Entry {
	if key == "" {
		return nil
	}
	for e := h.buckets[h.Hash(key)]; e != nil; e = e.next {
		if e.name == key {
			return e
		}
	}
	return nil
}

// Install adds the pair or replaces the definition of an existing name in
// place. An empty name is a no-op and returns a nil entry.
func (h *HashIndex) Install(name, definition string) (*Entry, error) {
	if name == "" {
		return nil, nil
	}

	bucket := h.Hash(name)

	if e := h.Lookup(name); e != nil {
		e.definition = definition
		h.options.Observer.Emit(events.Event{
			Op:       events.OpUpdate,
			Store:    h.options.Name,
			Key:      name,
			Bucket:   bucket,
			Replaced: true,
			Count:    h.entries,
		})
		return e, nil
	}

	if h.options.MaxEntries > 0 && h.entries >= h.options.MaxEntries {
		h.options.Observer.Emit(events.Event{
			Op:     events.OpAllocationFailed,
			Store:  h.options.Name,
			Key:    name,
			Bucket: bucket,
			Count:  h.entries,
		})
		return nil, fmt.Errorf("install '%s': %w", name, ErrAllocation)
	}

	e := &Entry{
		name:       strings.Clone(name),
		definition: definition,
		next:       h.buckets[bucket],
	}
	h.buckets[bucket] = e
	h.entries++

	h.options.Observer.Emit(events.Event{
		Op:     events.OpInstall,
		Store:  h.options.Name,
		Key:    name,
		Bucket: bucket,
		Count:  h.entries,
	})

	return e, nil
}

func (h *HashIndex) Clear() {
	released := h.entries
	for i := range h.buckets {
		h.buckets[i] = nil
	}
	h.entries = 0

	h.options.Observer.Emit(events.Event{
		Op:    events.OpClear,
		Store: h.options.Name,
		Count: released,
	})
}

// Traverse walks buckets in ascending order and each chain from its head,
// stopping when f returns false.
func (h *HashIndex) Traverse(f func(bucket int, e *Entry) bool) {
	for i, head := range h.buckets {
		for e := head; e != nil; e = e.next {
			if !f(i, e) {
				return
			}
		}
	}
}

func (h *HashIndex) Enumerate() []Triple {
	result := make([]Triple, 0, h.entries)
	h.Traverse(func(bucket int, e *Entry) bool {
		result = append(result, Triple{
			Bucket:     bucket,
			Name:       e.name,
			Definition: e.definition,
		})
		return true
	})
	return result
}

func (h *HashIndex) Stats() Stats {
	stats := Stats{
		Buckets: len(h.buckets),
		Entries: h.entries,
	}
	for _, head := range h.buckets {
		if head == nil {
			continue
		}
		stats.UsedBuckets++
		chain := 0
		for e := head; e != nil; e = e.next {
			chain++
		}
		if chain > stats.LongestChain {
			stats.LongestChain = chain
		}
	}
	return stats
}

// String renders the non-empty buckets, one entry per line
func (h *HashIndex) String() string {
	sb := &strings.Builder{}
	sb.WriteString("Current hash table contents:\n")
	last := -1
	h.Traverse(func(bucket int, e *Entry) bool {
		if bucket != last {
			fmt.Fprintf(sb, "Bucket %d:\n", bucket)
			last = bucket
		}
		fmt.Fprintf(sb, "  %s => %s\n", e.name, e.definition)
		return true
	})
	return sb.String()
}
