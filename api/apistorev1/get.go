package apistorev1

import (
	"context"

	"github.com/fulldump/box"
)

type getRequest struct {
	Key     string `json:"key"`
	Default int    `json:"default"`
}

type getResponse struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
	Found bool   `json:"found"`
}

func get(ctx context.Context, input *getRequest) (*getResponse, error) {

	s := GetServicer(ctx)
	mapName := box.GetUrlParameter(ctx, "mapName")

	value, found, err := s.Get(mapName, input.Key, input.Default)
	if err != nil {
		return nil, err
	}

	return &getResponse{
		Key:   input.Key,
		Value: value,
		Found: found,
	}, nil
}
