package apistorev1

import (
	"context"

	"github.com/fulldump/box"
)

func size(ctx context.Context) (interface{}, error) {

	s := GetServicer(ctx)
	mapName := box.GetUrlParameter(ctx, "mapName")

	n, err := s.Size(mapName)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"size": n,
	}, nil
}
