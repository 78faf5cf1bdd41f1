package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/rawbytedev/repeated"
	"github.com/rawbytedev/repeated/pkg/message"
)

// Config drives one harness run.
type Config struct {
	Schema     message.Schema
	Length     int // elements appended to every field
	Readers    int // goroutines holding shared views at once
	Iterations int // indexed operations per goroutine
	Profile    string
	PprofAddr  string
	LogLevel   zerolog.Level
}

func DefaultConfig() Config {
	return Config{
		Schema: message.Schema{
			Name: "Sample",
			Fields: []message.FieldDesc{
				{Number: 1, Name: "ids", Kind: repeated.KindUint64},
				{Number: 2, Name: "scores", Kind: repeated.KindInt32},
				{Number: 3, Name: "ratios", Kind: repeated.KindFloat32},
			},
		},
		Length:     1024,
		Readers:    4,
		Iterations: 100000,
		LogLevel:   zerolog.InfoLevel,
	}
}

type fileConfig struct {
	Message    message.Schema `toml:"message"`
	Length     int            `toml:"length"`
	Readers    int            `toml:"readers"`
	Iterations int            `toml:"iterations"`
	Profile    string         `toml:"profile"`
	PprofAddr  string         `toml:"pprof_addr"`
	LogLevel   string         `toml:"log_level"`
}

func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load harness config: %w", err)
	}

	if meta.IsDefined("message") {
		cfg.Schema = raw.Message
	}
	if meta.IsDefined("length") {
		cfg.Length = raw.Length
	}
	if meta.IsDefined("readers") {
		cfg.Readers = raw.Readers
	}
	if meta.IsDefined("iterations") {
		cfg.Iterations = raw.Iterations
	}
	if meta.IsDefined("profile") {
		cfg.Profile = strings.TrimSpace(raw.Profile)
	}
	if meta.IsDefined("pprof_addr") {
		cfg.PprofAddr = strings.TrimSpace(raw.PprofAddr)
	}
	if meta.IsDefined("log_level") {
		lvl, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
		cfg.LogLevel = lvl
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if len(cfg.Schema.Fields) == 0 {
		return errors.New("harness config has no fields")
	}
	if cfg.Length < 0 {
		return fmt.Errorf("harness config: negative length %d", cfg.Length)
	}
	if cfg.Readers <= 0 {
		return fmt.Errorf("harness config: readers must be positive, got %d", cfg.Readers)
	}
	if cfg.Iterations < 0 {
		return fmt.Errorf("harness config: negative iterations %d", cfg.Iterations)
	}
	return nil
}
