package apistorev1

import (
	"context"

	"github.com/fulldump/box"
)

func closeIterator(ctx context.Context) error {

	s := GetServicer(ctx)
	iteratorId := box.GetUrlParameter(ctx, "iteratorId")

	return s.CloseIterator(iteratorId)
}
