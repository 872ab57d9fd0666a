package apistorev1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/chainkv/service"
)

func getIndex(ctx context.Context) (*service.IndexInfo, error) {

	s := GetServicer(ctx)
	indexName := box.GetUrlParameter(ctx, "indexName")

	return s.GetIndex(indexName)
}
