package apistorev1

import (
	"context"
	"net/http"

	"github.com/fulldump/chainkv/service"
)

type createIndexRequest struct {
	Name    string `json:"name"`
	Buckets int    `json:"buckets"`
}

func createIndex(ctx context.Context, w http.ResponseWriter, input *createIndexRequest) (*service.IndexInfo, error) {

	s := GetServicer(ctx)

	index, err := s.CreateIndex(input.Name, input.Buckets)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return index, nil
}
