package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/chainkv/api/apistorev1"
	"github.com/fulldump/chainkv/service"
)

func Build(s service.Servicer, version string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
	)

	apistorev1.BuildV1Store(v1).
		WithInterceptors(
			injectServicer(s),
		)

	b.Resource("/release").
		WithActions(box.Get(func(w http.ResponseWriter) string {
			return version
		}).WithName("release"))

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apistorev1.SetServicer(ctx, s))
		}
	}
}
