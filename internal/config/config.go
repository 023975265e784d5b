// Package config loads the xform configuration file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mouse-blink/xform/internal/domain"
	m "github.com/mouse-blink/xform/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. XFORM_YES.
const EnvPrefix = "XFORM"

// DefaultName is the config file searched in the working directory.
const DefaultName = "xform"

// Config holds all application configuration.
type Config struct {
	Yes          bool                `mapstructure:"yes"`
	Async        bool                `mapstructure:"async"`
	Parallel     bool                `mapstructure:"parallel"`
	Report       string              `mapstructure:"report"`
	Log          LogConfig           `mapstructure:"log"`
	Transformers []TransformerConfig `mapstructure:"transformers"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TransformerConfig is one entry of the transformers list.
type TransformerConfig struct {
	Name           string   `mapstructure:"name"`
	Include        []string `mapstructure:"include"`
	Exclude        []string `mapstructure:"exclude"`
	TSConfig       string   `mapstructure:"tsconfig"`
	InsertTSConfig bool     `mapstructure:"insert_tsconfig"`
	CheckInclude   bool     `mapstructure:"check_include"`
	ParseImports   bool     `mapstructure:"parse_imports"`
	// Async overrides the top-level async setting when set.
	Async       *bool `mapstructure:"async"`
	Concurrency int   `mapstructure:"concurrency"`
	// Plugins are maps holding an "id" key plus the plugin options.
	Plugins []map[string]any `mapstructure:"plugins"`
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	seen := make(map[string]bool)

	for i, t := range c.Transformers {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}

		if t.Name != "" && seen[t.Name] {
			warnings = append(warnings, fmt.Sprintf("transformer '%s' is defined more than once", t.Name))
		}

		seen[t.Name] = true

		if len(t.Plugins) == 0 {
			warnings = append(warnings, fmt.Sprintf("transformer '%s' has no plugins", name))
		}

		if len(t.Include) == 0 && !(t.InsertTSConfig && t.TSConfig != "") {
			warnings = append(warnings, fmt.Sprintf("transformer '%s' includes no files", name))
		}

		if t.InsertTSConfig && t.TSConfig == "" {
			warnings = append(warnings, fmt.Sprintf("transformer '%s' sets insert_tsconfig without tsconfig", name))
		}

		if t.Concurrency < 0 {
			warnings = append(warnings, fmt.Sprintf("transformer '%s' concurrency %d is negative", name, t.Concurrency))
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown log level '%s'", c.Log.Level))
	}

	return warnings
}

// Specs converts the transformers list for the domain layer.
func (c *Config) Specs() ([]domain.TransformerSpec, error) {
	specs := make([]domain.TransformerSpec, 0, len(c.Transformers))

	for i, t := range c.Transformers {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("transformer-%d", i+1)
		}

		async := c.Async
		if t.Async != nil {
			async = *t.Async
		}

		plugins := make([]domain.PluginSpec, 0, len(t.Plugins))

		for j, raw := range t.Plugins {
			spec, err := pluginSpec(raw)
			if err != nil {
				return nil, fmt.Errorf("transformer %s: plugin #%d: %w", name, j+1, err)
			}

			plugins = append(plugins, spec)
		}

		specs = append(specs, domain.TransformerSpec{
			Name:           name,
			Include:        t.Include,
			Exclude:        t.Exclude,
			TSConfig:       m.Path(t.TSConfig),
			InsertTSConfig: t.InsertTSConfig,
			CheckInclude:   t.CheckInclude,
			ParseImports:   t.ParseImports,
			Async:          async,
			Concurrency:    t.Concurrency,
			Plugins:        plugins,
		})
	}

	return specs, nil
}

func pluginSpec(raw map[string]any) (domain.PluginSpec, error) {
	id, ok := raw["id"].(string)
	if !ok || id == "" {
		return domain.PluginSpec{}, errors.New("missing id")
	}

	options := make(map[string]any, len(raw)-1)

	for k, v := range raw {
		if k != "id" {
			options[k] = v
		}
	}

	return domain.PluginSpec{ID: id, Options: options}, nil
}

// Load reads configuration from file and environment. An empty path looks
// for xform.{yaml,yml,json,toml} in dir and falls back to the defaults
// when there is none; an explicit path must exist.
func Load(path, dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("yes", false)
	v.SetDefault("async", true)
	v.SetDefault("parallel", true)
	v.SetDefault("report", "")
	v.SetDefault("log.level", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.File = v.ConfigFileUsed()

	return &cfg, nil
}
