// Package config provides functionality for managing configuration options
// for the server using command-line flags, a JSON or YAML file and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinyakov/GophForms/internal/logger"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Options holds the configuration values for the server.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address" yaml:"address" env:"SERVER_ADDRESS"`

	// DatabaseDSN holds the PostgreSQL connection string.
	// When empty the server keeps credentials in memory.
	DatabaseDSN string `json:"database_dsn" yaml:"database_dsn" env:"DATABASE_DSN"`

	// LogLevel is the minimum zap level ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`

	// EnableHTTPS switches the server to TLS using CertFile and KeyFile.
	EnableHTTPS bool `json:"enable_https" yaml:"enable_https" env:"ENABLE_HTTPS"`

	// CertFile is the path to the PEM server certificate.
	CertFile string `json:"cert_file" yaml:"cert_file" env:"TLS_CERT_FILE"`

	// KeyFile is the path to the PEM server private key.
	KeyFile string `json:"key_file" yaml:"key_file" env:"TLS_KEY_FILE"`

	// Config is the path to the Config file.
	Config string `json:"-" yaml:"-" env:"CONFIG"`
}

// Defaults returns the options used when nothing else is set.
func Defaults() *Options {
	return &Options{
		Port:     "localhost:8080",
		LogLevel: "info",
		CertFile: "certs/server.crt",
		KeyFile:  "certs/server.key",
		Config:   "config.json",
	}
}

// Parse reads os.Args and the environment. It returns a pointer to the
// Options struct containing the parsed configuration values, or exits the
// process when the configuration cannot be read.
func Parse() *Options {
	options, err := ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return options
}

// ParseArgs builds Options from defaults, then command-line flags, then the
// config file (if it exists), then environment variables. Each layer
// overrides the previous one. Files ending in .yaml or .yml are read as YAML,
// anything else as JSON.
func ParseArgs(args []string) (*Options, error) {
	options := Defaults()

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", options.Port, "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", options.DatabaseDSN, "db address (empty keeps credentials in memory)")
	fs.StringVar(&options.LogLevel, "l", options.LogLevel, "log level")
	fs.BoolVar(&options.EnableHTTPS, "tls", options.EnableHTTPS, "serve HTTPS")
	fs.StringVar(&options.CertFile, "cert", options.CertFile, "path to server certificate")
	fs.StringVar(&options.KeyFile, "key", options.KeyFile, "path to server private key")
	fs.StringVar(&options.Config, "config", options.Config, "path to config file")
	fs.StringVar(&options.Config, "c", options.Config, "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// The config path itself may come from the environment.
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		data, err := os.ReadFile(options.Config)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("error while reading config file: %w", err)
		default:
			if err := decodeFile(options.Config, data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if _, err := logger.ParseLevel(options.LogLevel); err != nil {
		return nil, err
	}

	return options, nil
}

func decodeFile(path string, data []byte, options *Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, options)
	default:
		return json.Unmarshal(data, options)
	}
}
