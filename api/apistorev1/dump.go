package apistorev1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/chainkv/orderedstore"
)

func dump(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params, err := readTraverseParams(r)
	if err != nil {
		return err
	}

	s := GetServicer(ctx)
	mapName := box.GetUrlParameter(ctx, "mapName")

	if _, err := s.GetMap(mapName); err != nil {
		return err
	}

	write, lastErr := lineWriter(w, params, func(item any) map[string]any {
		e := item.(orderedstore.Entry)
		return map[string]any{
			"key":   e.Key,
			"value": float64(e.Value),
		}
	})

	err = s.Dump(mapName, params.Reverse, func(e orderedstore.Entry) bool {
		return write(e)
	})
	if err != nil {
		return err
	}

	return lastErr()
}
