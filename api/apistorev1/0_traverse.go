package apistorev1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/SierraSoftworks/connor"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

var ErrEntryNotFound = errors.New("entry not found")

type traverseParams struct {
	Filter  map[string]any `json:"filter"`
	Skip    int64          `json:"skip"`
	Limit   int64          `json:"limit"` // negative means no limit
	Reverse bool           `json:"reverse"`
}

func readTraverseParams(r *http.Request) (*traverseParams, error) {

	params := &traverseParams{
		Filter: map[string]any{},
		Skip:   0,
		Limit:  -1,
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return params, nil
	}

	err = json2.Unmarshal(body, params)
	if err != nil {
		return nil, err
	}

	return params, nil
}

// lineWriter applies filter, skip and limit and writes every accepted item as
// one JSON line. The returned func reports false once the limit is reached.
func lineWriter(w http.ResponseWriter, params *traverseParams, fields func(item any) map[string]any) (func(item any) bool, func() error) {

	hasFilter := len(params.Filter) > 0
	skip := params.Skip
	limit := params.Limit
	encoder := jsontext.NewEncoder(w)

	var lastErr error

	write := func(item any) bool {

		if limit == 0 {
			return false
		}

		if hasFilter {
			match, err := connor.Match(params.Filter, fields(item))
			if err != nil {
				lastErr = fmt.Errorf("match: %w", err)
				return false
			}
			if !match {
				return true
			}
		}

		if skip > 0 {
			skip--
			return true
		}

		err := json2.MarshalEncode(encoder, item)
		if err != nil {
			lastErr = fmt.Errorf("encode: %w", err)
			return false
		}

		if limit > 0 {
			limit--
		}
		return limit != 0
	}

	return write, func() error { return lastErr }
}
