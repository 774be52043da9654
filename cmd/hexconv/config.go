package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

type config struct {
	// Name and Len describe the value being converted. Len 0 means the value
	// has no fixed length and can only be read from human-readable formats.
	Name     string
	Len      int
	From     string
	To       string
	LogLevel string
	LogFile  string
}

func defaultConfig() config {
	return config{
		Name:     "Value",
		From:     "hex",
		To:       "json",
		LogLevel: "warn",
	}
}

type fileConfig struct {
	Name     string `toml:"name"`
	Len      int    `toml:"len"`
	From     string `toml:"from"`
	To       string `toml:"to"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, errors.Wrap(err, "load config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, errors.Newf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("name") {
		if name := strings.TrimSpace(raw.Name); name != "" {
			cfg.Name = name
		}
	}
	if meta.IsDefined("len") {
		if raw.Len < 0 {
			return config{}, errors.Newf("load config: negative len %d", raw.Len)
		}
		cfg.Len = raw.Len
	}
	if meta.IsDefined("from") {
		cfg.From = strings.TrimSpace(raw.From)
	}
	if meta.IsDefined("to") {
		cfg.To = strings.TrimSpace(raw.To)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_file") {
		cfg.LogFile = strings.TrimSpace(raw.LogFile)
	}
	return cfg, nil
}
