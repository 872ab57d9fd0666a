package orderedstore

import "errors"

var ErrInvalidated = errors.New("iterator invalidated: store was freed")

// Iterator walks the entries that existed when it was created. Value updates
// made meanwhile are visible, later inserts are not. Once Next returns false
// it keeps returning false.
type Iterator struct {
	store      *Store
	cursor     int32
	last       int32
	reverse    bool
	generation uint64
	err        error
}

// Iterator returns a forward cursor positioned at the head
func (s *Store) Iterator() *Iterator {
	return &Iterator{
		store:      s,
		cursor:     s.head,
		last:       s.tail,
		generation: s.generation,
	}
}

// IteratorReverse returns a cursor that follows prev links from the tail
func (s *Store) IteratorReverse() *Iterator {
	return &Iterator{
		store:      s,
		cursor:     s.tail,
		last:       s.head,
		reverse:    true,
		generation: s.generation,
	}
}

func (it *Iterator) Next() (Entry, bool) {
	if it.cursor == none {
		return Entry{}, false
	}
	if it.generation != it.store.generation {
		it.cursor = none
		it.err = ErrInvalidated
		return Entry{}, false
	}

	current := it.store.entries[it.cursor]
	switch {
	case it.cursor == it.last:
		it.cursor = none
	case it.reverse:
		it.cursor = current.prev
	default:
		it.cursor = current.next
	}

	return Entry{Key: current.key, Value: current.value}, true
}

// Err reports why the iteration stopped early, nil on normal exhaustion
func (it *Iterator) Err() error {
	return it.err
}
