package bootstrap

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fulldump/box"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fulldump/chainkv/api"
	"github.com/fulldump/chainkv/configuration"
	"github.com/fulldump/chainkv/database"
	"github.com/fulldump/chainkv/logger"
	"github.com/fulldump/chainkv/service"
)

var VERSION = "dev"

func initLogger(c *configuration.Configuration) {

	level, err := logger.ParseLogLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	format, formatErr := logger.ParseFormat(c.LogFormat)

	logger.Init(logger.Options{
		Level:  level,
		Format: format,
	})
	log.Logger = logger.Root

	if err != nil {
		logger.Root.Warn().Err(err).Str("level", c.LogLevel).Msg("bad log level, using info")
	}
	if formatErr != nil {
		logger.Root.Warn().Err(formatErr).Msg("bad log format, using console")
	}
}

func Bootstrap(c *configuration.Configuration) (start, stop func()) {

	initLogger(c)

	db := database.NewDatabase(&database.Config{
		Buckets:    c.Buckets,
		MaxEntries: c.MaxEntries,
		Logger:     &logger.Store,
	})

	s := service.NewService(db, logger.Service)

	b := api.Build(s, VERSION)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.AccessLog(logger.Api),
		api.InterceptorUnavailable(s),
		api.RecoverFromPanic,
		api.PrettyErrorInterceptor,
	)

	server := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		logger.Root.Fatal().Err(err).Str("addr", c.HttpAddr).Msg("listen")
	}
	logger.Root.Info().Str("addr", c.HttpAddr).Msg("listening")

	// in-flight requests drain before the stores are released
	stop = func() {
		server.Shutdown(context.Background())
		s.Stop()
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		for {
			sig := <-signalChan
			logger.Root.Info().Str("signal", sig.String()).Msg("signal received")
			stop()
		}
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Start()
			if err != nil {
				logger.Root.Error().Err(err).Msg("database")
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := server.Serve(ln)
			if err != nil && err != http.ErrServerClosed {
				logger.Root.Error().Err(err).Msg("http server")
			}
		}()

		wg.Wait()
	}

	return
}
