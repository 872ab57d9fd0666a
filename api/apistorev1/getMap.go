package apistorev1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/chainkv/service"
)

func getMap(ctx context.Context) (*service.MapInfo, error) {

	s := GetServicer(ctx)
	mapName := box.GetUrlParameter(ctx, "mapName")

	return s.GetMap(mapName)
}
