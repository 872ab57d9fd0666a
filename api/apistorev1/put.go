package apistorev1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/chainkv/orderedstore"
)

func put(ctx context.Context, input *orderedstore.Entry) (*orderedstore.Entry, error) {

	s := GetServicer(ctx)
	mapName := box.GetUrlParameter(ctx, "mapName")

	err := s.Put(mapName, input.Key, input.Value)
	if err != nil {
		return nil, err
	}

	return input, nil
}
