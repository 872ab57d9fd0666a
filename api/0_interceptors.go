package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"
	"github.com/rs/zerolog"
)

func RecoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				debug.PrintStack()
				box.SetError(ctx, panicError{value: err})
			}
		}()
		next(ctx)
	}
}

type panicError struct {
	value interface{}
}

func (p panicError) Error() string {
	return fmt.Sprint("panic: ", p.value)
}

func AccessLog(l zerolog.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			now := time.Now()
			defer func() {
				entry := l.Info()
				if err := box.GetError(ctx); err != nil {
					entry = l.Warn().Err(err)
				}
				entry.
					Str("remote", formatRemoteAddr(r)).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Dur("took", time.Since(now)).
					Msg("access")
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	i := strings.LastIndex(r.RemoteAddr, ":")
	if i < 0 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[0:i]
}
