package apistorev1

import (
	"context"

	"github.com/fulldump/box"
)

func dropMap(ctx context.Context) error {

	s := GetServicer(ctx)
	mapName := box.GetUrlParameter(ctx, "mapName")

	return s.DropMap(mapName)
}
