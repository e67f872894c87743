// Command rustychess serves the chess API over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/colmak/rustychess/internal/engine"
	"github.com/colmak/rustychess/internal/httpapi"
	"github.com/colmak/rustychess/internal/session"
	"github.com/colmak/rustychess/internal/storage"
)

var (
	addr      = flag.String("addr", ":8080", "listen address")
	dbDir     = flag.String("db", "", "badger database directory (empty for in-memory)")
	staticDir = flag.String("static", "", "directory of static files to serve at / (empty to disable)")
	depth     = flag.Int("depth", 3, "default search depth for best-move requests")
	workers   = flag.Int("workers", runtime.NumCPU(), "number of parallel search workers")
	logLevel  = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
)

func main() {
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		log = log.Level(lvl)
	} else {
		log.Warn().Str("level", *logLevel).Msg("unknown log level, using info")
	}

	store, err := storage.Open(*dbDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dbDir).Msg("open game store")
	}
	defer store.Close()

	registry := session.New(store)
	eng := engine.New(*workers)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(log, registry, eng, *depth, *staticDir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	log.Info().
		Str("addr", *addr).
		Int("depth", *depth).
		Int("workers", *workers).
		Bool("persistent", *dbDir != "").
		Msg("rustychess listening")

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}
}
