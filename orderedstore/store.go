// Package orderedstore keeps integer values by text key in insertion order.
//
// Entries live in an arena (a slice) and are linked by index, so appending is
// O(1) and lookups are a linear scan from the head. Keys are never removed one
// by one: the whole store is released with Free.
package orderedstore

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/fulldump/chainkv/events"
)

var ErrAllocation = errors.New("allocation error: no storage for a new entry")

const none int32 = -1

// arenaLimit bounds the arena so every index fits in an int32 link
var arenaLimit = math.MaxInt32

type entry struct {
	key   string
	value int
	prev  int32 // non-owning
	next  int32
}

// Entry is what callers see, links are kept private
type Entry struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

type StoreOptions struct {
	Name       string
	MaxEntries int // 0 means unlimited
	Observer   events.Observer
}

// Store is not safe for concurrent use
type Store struct {
	entries    []entry
	head       int32
	tail       int32
	count      int
	generation uint64 // bumped on Free
	options    *StoreOptions
}

func New(options *StoreOptions) *Store {
	if options == nil {
		options = &StoreOptions{}
	}
	return &Store{
		head:    none,
		tail:    none,
		options: options,
	}
}

func (s *Store) find(key string) int32 {
	if key == "" {
		return none
	}
	for i := s.head; i != none; i = s.entries[i].next {
		if s.entries[i].key == key {
			return i
		}
	}
	return none
}

// Put appends key after the tail or overwrites its value in place.
// Empty keys are ignored.
func (s *Store) Put(key string, value int) error {
	if key == "" {
		return nil
	}

	if i := s.find(key); i != none {
		s.entries[i].value = value
		s.options.Observer.Emit(events.Event{
			Op:       events.OpUpdate,
			Store:    s.options.Name,
			Key:      key,
			Value:    value,
			Replaced: true,
			Count:    s.count,
		})
		return nil
	}

	full := s.options.MaxEntries > 0 && s.count >= s.options.MaxEntries
	if full || len(s.entries) >= arenaLimit {
		s.options.Observer.Emit(events.Event{
			Op:    events.OpAllocationFailed,
			Store: s.options.Name,
			Key:   key,
			Value: value,
			Count: s.count,
		})
		return fmt.Errorf("put '%s': %w", key, ErrAllocation)
	}

	i := int32(len(s.entries))
	s.entries = append(s.entries, entry{
		key:   strings.Clone(key),
		value: value,
		prev:  s.tail,
		next:  none,
	})

	if s.tail != none {
		s.entries[s.tail].next = i
	} else {
		s.head = i
	}
	s.tail = i
	s.count++

	s.options.Observer.Emit(events.Event{
		Op:    events.OpPut,
		Store: s.options.Name,
		Key:   key,
		Value: value,
		Count: s.count,
	})

	return nil
}

// Get returns the value stored under key or def when it is missing
func (s *Store) Get(key string, def int) int {
	if i := s.find(key); i != none {
		return s.entries[i].value
	}
	return def
}

func (s *Store) Lookup(key string) (int, bool) {
	i := s.find(key)
	if i == none {
		return 0, false
	}
	return s.entries[i].value, true
}

func (s *Store) Size() int {
	return s.count
}

// Dump lists the entries from head to tail
func (s *Store) Dump() []Entry {
	result := make([]Entry, 0, s.count)
	for i := s.head; i != none; i = s.entries[i].next {
		result = append(result, Entry{Key: s.entries[i].key, Value: s.entries[i].value})
	}
	return result
}

func (s *Store) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		it := s.Iterator()
		for {
			e, ok := it.Next()
			if !ok || !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

func (s *Store) Backward() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		it := s.IteratorReverse()
		for {
			e, ok := it.Next()
			if !ok || !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Free releases every entry. Iterators created before Free report exhaustion.
func (s *Store) Free() {
	released := s.count
	s.entries = nil
	s.head = none
	s.tail = none
	s.count = 0
	s.generation++

	s.options.Observer.Emit(events.Event{
		Op:    events.OpFree,
		Store: s.options.Name,
		Count: released,
	})
}

func (s *Store) String() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Object Map count=%d\n", s.count)
	for i := s.head; i != none; i = s.entries[i].next {
		fmt.Fprintf(sb, "  %s=%d\n", s.entries[i].key, s.entries[i].value)
	}
	return sb.String()
}
