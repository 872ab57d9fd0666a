package apistorev1

import (
	"context"

	"github.com/fulldump/chainkv/service"
)

func listIndexes(ctx context.Context) ([]*service.IndexInfo, error) {
	return GetServicer(ctx).ListIndexes(), nil
}
