package apistorev1

import (
	"context"
	"net/http"

	"github.com/fulldump/chainkv/service"
)

type createMapRequest struct {
	Name string `json:"name"`
}

func createMap(ctx context.Context, w http.ResponseWriter, input *createMapRequest) (*service.MapInfo, error) {

	s := GetServicer(ctx)

	m, err := s.CreateMap(input.Name)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return m, nil
}
