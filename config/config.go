// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads gibbername CLI settings from flags, environment and
// an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/inconshreveable/log15"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/client"
)

const (
	EnvPrefix   = "GIBBERNAME"
	DefaultPath = "~/.gibbername/config.yaml"

	// DefaultLocalEndpoint is where "gibbername devnet" listens by default.
	DefaultLocalEndpoint = "http://127.0.0.1:9660"
)

var ErrNoEndpoint = errors.New("no endpoint configured")

type Config struct {
	Network        chain.NetworkID   `mapstructure:"network"`
	Endpoint       string            `mapstructure:"endpoint"`
	Endpoints      map[string]string `mapstructure:"endpoints"`
	RequestTimeout time.Duration     `mapstructure:"request_timeout"`
	PollInterval   time.Duration     `mapstructure:"poll_interval"`
	WalletPath     string            `mapstructure:"wallet_path"`
	LogLevel       string            `mapstructure:"log_level"`
}

func Defaults() Config {
	return Config{
		Network: chain.Local,
		Endpoints: map[string]string{
			string(chain.Local): DefaultLocalEndpoint,
		},
		RequestTimeout: client.DefaultRequestTimeout,
		PollInterval:   client.DefaultPollInterval,
		WalletPath:     "~/.gibbername/wallet.pk",
		LogLevel:       log.LvlWarn.String(),
	}
}

// Setup registers defaults and environment lookups on [v] and reads
// [cfgFile], or [DefaultPath] if it exists.
func Setup(v *viper.Viper, cfgFile string) error {
	defaults := Defaults()
	v.SetDefault("network", string(defaults.Network))
	for n, uri := range defaults.Endpoints {
		v.SetDefault("endpoints."+n, uri)
	}
	// AutomaticEnv only covers keys viper already knows.
	for _, n := range chain.Networks() {
		if err := v.BindEnv("endpoints." + string(n)); err != nil {
			return err
		}
	}
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("poll_interval", defaults.PollInterval)
	v.SetDefault("wallet_path", defaults.WalletPath)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		p, err := homedir.Expand(DefaultPath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(p); err != nil {
			// No config file is fine.
			return nil
		}
		cfgFile = p
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
	}
	log.Debug("loaded config", "path", v.ConfigFileUsed())
	return nil
}

// Load decodes and validates the settings held by [v].
func Load(v *viper.Viper) (*Config, error) {
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	n, err := chain.ParseNetworkID(string(cfg.Network))
	if err != nil {
		return nil, err
	}
	cfg.Network = n
	if _, err := log.LvlFromString(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout <= 0 || cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid durations: request_timeout=%s poll_interval=%s", cfg.RequestTimeout, cfg.PollInterval)
	}
	return cfg, nil
}

// EndpointFor returns the endpoint to use for [n]. An explicit endpoint wins
// over the per-network table.
func (c *Config) EndpointFor(n chain.NetworkID) (string, error) {
	if c.Endpoint != "" {
		return c.Endpoint, nil
	}
	if uri, ok := c.Endpoints[string(n)]; ok && uri != "" {
		return uri, nil
	}
	return "", fmt.Errorf("%w for %s (set endpoints.%s or --endpoint)", ErrNoEndpoint, n, n)
}

func (c *Config) ClientOptions() []client.OpOption {
	return []client.OpOption{
		client.WithRequestTimeout(c.RequestTimeout),
		client.WithPollInterval(c.PollInterval),
	}
}
