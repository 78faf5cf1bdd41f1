package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func initLogger(level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", "repeated-harness").Logger()
	log.Logger = logger
	return logger
}

func main() {
	configPath := flag.String("config", "", "path to a TOML harness config")
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			l := initLogger(zerolog.InfoLevel)
			l.Fatal().Err(err).Msg("config")
		}
		cfg = loaded
	}
	logger := initLogger(cfg.LogLevel)

	if cfg.PprofAddr != "" {
		go func() {
			logger.Info().Err(http.ListenAndServe(cfg.PprofAddr, nil)).Msg("pprof server stopped")
		}()
	}
	if cfg.Profile != "" {
		runtime.MemProfileRate = 1
	}

	start := time.Now()
	stats, err := run(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("run")
	}
	logger.Info().Object("stats", stats).Dur("elapsed", time.Since(start)).Msg("done")

	if cfg.Profile != "" {
		f, err := os.Create(cfg.Profile)
		if err != nil {
			logger.Fatal().Err(err).Msg("create profile")
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Error().Err(err).Msg("write heap profile")
		}
	}
}
