package apistorev1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/chainkv/service"
)

type installRequest struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

func install(ctx context.Context, w http.ResponseWriter, input *installRequest) (*service.Installed, error) {

	s := GetServicer(ctx)
	indexName := box.GetUrlParameter(ctx, "indexName")

	installed, err := s.Install(indexName, input.Name, input.Definition)
	if err != nil {
		return nil, err
	}

	if !installed.Replaced {
		w.WriteHeader(http.StatusCreated)
	}
	return installed, nil
}
