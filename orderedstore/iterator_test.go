package orderedstore

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestIterator(t *testing.T) {

	biff.Alternative("Store z y b a", func(a *biff.A) {

		s := New(nil)
		s.Put("z", 1)
		s.Put("y", 2)
		s.Put("b", 3)
		s.Put("a", 4)

		it := s.Iterator()

		a.Alternative("Yields in insertion order then exhausts", func(a *biff.A) {
			for _, expected := range []Entry{
				{Key: "z", Value: 1},
				{Key: "y", Value: 2},
				{Key: "b", Value: 3},
				{Key: "a", Value: 4},
			} {
				e, ok := it.Next()
				biff.AssertTrue(ok)
				biff.AssertEqual(e, expected)
			}

			for i := 0; i < 3; i++ {
				_, ok := it.Next()
				biff.AssertFalse(ok)
			}
			biff.AssertNil(it.Err())
		})

		a.Alternative("Value updates are visible", func(a *biff.A) {
			it.Next()
			s.Put("b", 30)
			it.Next()
			e, ok := it.Next()
			biff.AssertTrue(ok)
			biff.AssertEqual(e, Entry{Key: "b", Value: 30})
		})

		a.Alternative("Inserts after creation are not yielded", func(a *biff.A) {
			s.Put("late", 5)

			n := 0
			for {
				_, ok := it.Next()
				if !ok {
					break
				}
				n++
			}
			biff.AssertEqual(n, 4)
			biff.AssertEqual(s.Size(), 5)
		})

		a.Alternative("Free invalidates", func(a *biff.A) {
			it.Next()
			s.Free()
			s.Put("other", 1)

			_, ok := it.Next()
			biff.AssertFalse(ok)
			biff.AssertEqual(it.Err(), ErrInvalidated)

			_, ok = it.Next()
			biff.AssertFalse(ok)
		})

		a.Alternative("Independent iterators", func(a *biff.A) {
			it.Next()
			it.Next()

			other := s.Iterator()
			e, _ := other.Next()
			biff.AssertEqual(e.Key, "z")
		})

		a.Alternative("Reverse", func(a *biff.A) {
			rit := s.IteratorReverse()
			s.Put("late", 5)

			result := []string{}
			for {
				e, ok := rit.Next()
				if !ok {
					break
				}
				result = append(result, e.Key)
			}
			biff.AssertEqual(result, []string{"a", "b", "y", "z"})
		})
	})
}

func TestIterator_Empty(t *testing.T) {

	s := New(nil)
	it := s.Iterator()

	_, ok := it.Next()
	biff.AssertFalse(ok)

	// puts after creation do not revive it
	s.Put("a", 1)
	_, ok = it.Next()
	biff.AssertFalse(ok)
	biff.AssertNil(it.Err())
}

func TestIterator_RangeStop(t *testing.T) {

	s := New(nil)
	s.Put("a", 1)
	s.Put("b", 2)
	s.Put("c", 3)

	visited := []string{}
	for k := range s.All() {
		visited = append(visited, k)
		if k == "b" {
			break
		}
	}
	biff.AssertEqual(visited, []string{"a", "b"})
}
