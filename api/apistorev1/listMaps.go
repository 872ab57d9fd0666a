package apistorev1

import (
	"context"

	"github.com/fulldump/chainkv/service"
)

func listMaps(ctx context.Context) ([]*service.MapInfo, error) {
	return GetServicer(ctx).ListMaps(), nil
}
