package orderedstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/chainkv/events"
)

func keys(s *Store) []string {
	result := []string{}
	for k := range s.All() {
		result = append(result, k)
	}
	return result
}

func TestStore(t *testing.T) {

	biff.Alternative("New store", func(a *biff.A) {

		recorder := &events.Recorder{}
		s := New(&StoreOptions{Name: "map", Observer: recorder.Observer()})
		biff.AssertEqual(s.Size(), 0)
		biff.AssertEqual(s.Dump(), []Entry{})

		a.Alternative("Put z y b a", func(a *biff.A) {
			biff.AssertNil(s.Put("z", 8))
			biff.AssertNil(s.Put("z", 1))
			biff.AssertNil(s.Put("y", 2))
			biff.AssertNil(s.Put("b", 3))
			biff.AssertNil(s.Put("a", 4))

			biff.AssertEqual(s.Size(), 4)
			biff.AssertEqual(s.Dump(), []Entry{
				{Key: "z", Value: 1},
				{Key: "y", Value: 2},
				{Key: "b", Value: 3},
				{Key: "a", Value: 4},
			})
			biff.AssertEqual(recorder.Ops(), []string{
				events.OpPut, events.OpUpdate, events.OpPut, events.OpPut, events.OpPut,
			})

			a.Alternative("Get", func(a *biff.A) {
				biff.AssertEqual(s.Get("z", 42), 1)
				biff.AssertEqual(s.Get("x", 42), 42)
				biff.AssertEqual(s.Get("missing", 42), 42)
				biff.AssertEqual(s.Get("", 42), 42)
			})

			a.Alternative("Lookup", func(a *biff.A) {
				v, ok := s.Lookup("b")
				biff.AssertTrue(ok)
				biff.AssertEqual(v, 3)

				_, ok = s.Lookup("B")
				biff.AssertFalse(ok)
			})

			a.Alternative("Update keeps position", func(a *biff.A) {
				biff.AssertNil(s.Put("y", 200))
				biff.AssertEqual(keys(s), []string{"z", "y", "b", "a"})
				biff.AssertEqual(s.Get("y", 0), 200)
				biff.AssertEqual(s.Size(), 4)
			})

			a.Alternative("String", func(a *biff.A) {
				biff.AssertEqual(s.String(), "Object Map count=4\n  z=1\n  y=2\n  b=3\n  a=4\n")
			})

			a.Alternative("Backward", func(a *biff.A) {
				result := []string{}
				for k, v := range s.Backward() {
					result = append(result, fmt.Sprintf("%s=%d", k, v))
				}
				biff.AssertEqual(result, []string{"a=4", "b=3", "y=2", "z=1"})
			})

			a.Alternative("Free", func(a *biff.A) {
				s.Free()
				biff.AssertEqual(s.Size(), 0)
				biff.AssertEqual(s.Dump(), []Entry{})
				biff.AssertEqual(s.Get("z", -1), -1)

				a.Alternative("Reuse after free", func(a *biff.A) {
					biff.AssertNil(s.Put("new", 1))
					biff.AssertEqual(s.Dump(), []Entry{{Key: "new", Value: 1}})
				})
			})
		})

		a.Alternative("Empty key is ignored", func(a *biff.A) {
			biff.AssertNil(s.Put("", 1))
			biff.AssertEqual(s.Size(), 0)
			biff.AssertEqual(len(recorder.Events()), 0)
		})
	})
}

func TestStore_UpdatePreservesPosition(t *testing.T) {

	s := New(nil)
	s.Put("A", 1)
	s.Put("B", 2)
	s.Put("C", 3)
	s.Put("B", 20)

	biff.AssertEqual(s.Dump(), []Entry{
		{Key: "A", Value: 1},
		{Key: "B", Value: 20},
		{Key: "C", Value: 3},
	})
}

func TestStore_Uniqueness(t *testing.T) {

	s := New(nil)

	distinct := map[string]bool{}
	for i := 0; i < 300; i++ {
		key := fmt.Sprintf("k%d", i%37)
		distinct[key] = true
		biff.AssertNil(s.Put(key, i))
	}

	biff.AssertEqual(s.Size(), len(distinct))
	biff.AssertEqual(len(s.Dump()), len(distinct))
}

func TestStore_Links(t *testing.T) {

	s := New(nil)
	biff.AssertEqual(s.head, none)
	biff.AssertEqual(s.tail, none)

	s.Put("a", 1)
	s.Put("b", 2)
	s.Put("c", 3)

	biff.AssertEqual(s.entries[s.head].key, "a")
	biff.AssertEqual(s.entries[s.tail].key, "c")
	biff.AssertEqual(s.entries[s.tail].next, none)
	biff.AssertEqual(s.entries[s.head].prev, none)
	biff.AssertEqual(s.entries[1].prev, int32(0))
	biff.AssertEqual(s.entries[1].next, int32(2))

	s.Free()
	biff.AssertEqual(s.head, none)
	biff.AssertEqual(s.tail, none)
	biff.AssertEqual(s.count, 0)
}

func TestStore_Allocation(t *testing.T) {

	s := New(&StoreOptions{MaxEntries: 1})

	biff.AssertNil(s.Put("a", 1))

	err := s.Put("b", 2)
	biff.AssertTrue(errors.Is(err, ErrAllocation))
	biff.AssertEqual(s.Dump(), []Entry{{Key: "a", Value: 1}})

	biff.AssertNil(s.Put("a", 10))
	biff.AssertEqual(s.Get("a", 0), 10)
}

func TestStore_ArenaLimit(t *testing.T) {

	defer func(limit int) { arenaLimit = limit }(arenaLimit)
	arenaLimit = 2

	s := New(nil)
	biff.AssertNil(s.Put("a", 1))
	biff.AssertNil(s.Put("b", 2))

	err := s.Put("c", 3)
	biff.AssertTrue(errors.Is(err, ErrAllocation))
	biff.AssertEqual(s.Size(), 2)

	// updates reuse their slot
	biff.AssertNil(s.Put("b", 20))
	biff.AssertEqual(s.Get("b", 0), 20)
}
