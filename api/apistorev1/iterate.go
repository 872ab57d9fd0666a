package apistorev1

import (
	"context"
	"io"
	"net/http"

	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/box"
)

type iterateResponse struct {
	Id  string `json:"id"`
	Map string `json:"map"`
}

func iterate(ctx context.Context, w http.ResponseWriter, r *http.Request) (*iterateResponse, error) {

	input := struct {
		Reverse bool `json:"reverse"`
	}{}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		if err := json2.Unmarshal(body, &input); err != nil {
			return nil, err
		}
	}

	s := GetServicer(ctx)
	mapName := box.GetUrlParameter(ctx, "mapName")

	id, err := s.OpenIterator(mapName, input.Reverse)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return &iterateResponse{
		Id:  id,
		Map: mapName,
	}, nil
}
