package main

import (
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/net/context"

	"github.com/carlmjohnson/versioninfo"
	"github.com/ducobridge/ducobox-mqtt/pkg/config"
	"github.com/ducobridge/ducobox-mqtt/pkg/controller"
	"github.com/ducobridge/ducobox-mqtt/pkg/debug"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logLevels = map[string]zerolog.Level{
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	config, err := config.ReadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error found when reading the config.")
	}
	if level, ok := logLevels[strings.ToUpper(config.LogLevel)]; ok {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("level", config.LogLevel).Msg("Unknown log level, keeping INFO.")
	}

	log.Info().Str("version", versioninfo.Short()).Msg("Starting DucoBox MQTT!")

	// Sidecar exposing metrics, probes and pprof.
	debugServerDone := &sync.WaitGroup{}
	debugServerDone.Add(1)
	srv, ready := debug.StartDebugServer(debugServerDone)

	bridge := controller.NewController(config)
	if err := bridge.Start(); err != nil {
		log.Fatal().Err(err).Msg("Error on starting the controller")
	}
	ready.Store(true)

	exitSignal := make(chan os.Signal, 2)
	signal.Notify(exitSignal, os.Interrupt, syscall.SIGTERM)
	<-exitSignal

	log.Info().Msg("Shutting down controller...")
	if err := bridge.Stop(); err != nil {
		log.Fatal().Err(err).Msg("Error when stopping the controller")
	}

	log.Info().Msg("Shutting down debug server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Error shutting down the debug server")
	}

	debugServerDone.Wait()
	log.Info().Msg("Done exiting.")
}
