package apistorev1

import (
	"context"

	"github.com/fulldump/box"
)

func clearIndex(ctx context.Context) (interface{}, error) {

	s := GetServicer(ctx)
	indexName := box.GetUrlParameter(ctx, "indexName")

	n, err := s.ClearIndex(indexName)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"cleared": n,
	}, nil
}
