package apistorev1

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/chainkv/orderedstore"
)

func entryFields(item any) map[string]any {
	e := item.(orderedstore.Entry)
	return map[string]any{"key": e.Key, "value": float64(e.Value)}
}

func writeEntries(params *traverseParams, entries ...orderedstore.Entry) []string {
	w := httptest.NewRecorder()
	write, lastErr := lineWriter(w, params, entryFields)
	for _, e := range entries {
		if !write(e) {
			break
		}
	}
	biff.AssertNil(lastErr())
	return strings.Split(strings.TrimSpace(w.Body.String()), "\n")
}

func TestLineWriter(t *testing.T) {

	entries := []orderedstore.Entry{
		{Key: "z", Value: 1},
		{Key: "y", Value: 2},
		{Key: "b", Value: 3},
		{Key: "a", Value: 4},
	}

	biff.Alternative("Line writer", func(a *biff.A) {

		a.Alternative("No params", func(a *biff.A) {
			lines := writeEntries(&traverseParams{Limit: -1}, entries...)
			biff.AssertEqual(lines, []string{
				`{"key":"z","value":1}`,
				`{"key":"y","value":2}`,
				`{"key":"b","value":3}`,
				`{"key":"a","value":4}`,
			})
		})

		a.Alternative("Skip and limit", func(a *biff.A) {
			lines := writeEntries(&traverseParams{Skip: 1, Limit: 2}, entries...)
			biff.AssertEqual(lines, []string{
				`{"key":"y","value":2}`,
				`{"key":"b","value":3}`,
			})
		})

		a.Alternative("Filter", func(a *biff.A) {
			lines := writeEntries(&traverseParams{
				Filter: map[string]any{"key": "b"},
				Limit:  -1,
			}, entries...)
			biff.AssertEqual(lines, []string{
				`{"key":"b","value":3}`,
			})
		})

		a.Alternative("Limit zero writes nothing", func(a *biff.A) {
			lines := writeEntries(&traverseParams{Limit: 0}, entries...)
			biff.AssertEqual(lines, []string{""})
		})
	})
}

func TestReadTraverseParamsDefaults(t *testing.T) {

	r := httptest.NewRequest("POST", "/v1/maps/m:dump", strings.NewReader(""))
	params, err := readTraverseParams(r)
	biff.AssertNil(err)
	biff.AssertEqual(params.Limit, int64(-1))
	biff.AssertEqual(params.Skip, int64(0))
	biff.AssertFalse(params.Reverse)

	r = httptest.NewRequest("POST", "/v1/maps/m:dump", strings.NewReader(`{"limit":3,"reverse":true}`))
	params, err = readTraverseParams(r)
	biff.AssertNil(err)
	biff.AssertEqual(params.Limit, int64(3))
	biff.AssertTrue(params.Reverse)
}
