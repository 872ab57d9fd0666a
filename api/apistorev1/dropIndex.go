package apistorev1

import (
	"context"

	"github.com/fulldump/box"
)

func dropIndex(ctx context.Context) error {

	s := GetServicer(ctx)
	indexName := box.GetUrlParameter(ctx, "indexName")

	return s.DropIndex(indexName)
}
