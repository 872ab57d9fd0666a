package apistorev1

import (
	"context"

	"github.com/fulldump/chainkv/service"
)

const ContextServicerKey = "6b1d0c2e-8f4a-11f0-9c3e-2f7d5a1b9e40"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer) // TODO: can raise panic :D
}
