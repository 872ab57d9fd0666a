package apistorev1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/chainkv/hashindex"
)

func enumerate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params, err := readTraverseParams(r)
	if err != nil {
		return err
	}

	s := GetServicer(ctx)
	indexName := box.GetUrlParameter(ctx, "indexName")

	// an unknown index must fail before anything is streamed
	if _, err := s.GetIndex(indexName); err != nil {
		return err
	}

	write, lastErr := lineWriter(w, params, func(item any) map[string]any {
		t := item.(hashindex.Triple)
		return map[string]any{
			"bucket":     float64(t.Bucket),
			"name":       t.Name,
			"definition": t.Definition,
		}
	})

	err = s.Enumerate(indexName, func(t hashindex.Triple) bool {
		return write(t)
	})
	if err != nil {
		return err
	}

	return lastErr()
}
