package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigSource is one layer in the configuration chain. Sources are loaded
// in ascending Priority order; later loads override earlier keys.
type ConfigSource interface {
	// Name identifies the source in error messages.
	Name() string

	// Priority orders the source within the chain (lower loads first).
	Priority() int

	// Load merges the source's values into the koanf instance.
	Load(k *koanf.Koanf) error
}

// DefaultSources builds the standard chain:
// defaults < YAML file < environment < flags.
func DefaultSources(configFilePath string, flags *pflag.FlagSet) []ConfigSource {
	sources := []ConfigSource{
		defaultsSource{},
		fileSource{path: configFilePath},
		envSource{},
	}
	if flags != nil {
		sources = append(sources, flagSource{flags: flags})
	}
	return sources
}

// defaultsSource loads the hardcoded defaults via the confmap provider.
type defaultsSource struct{}

func (defaultsSource) Name() string  { return "defaults" }
func (defaultsSource) Priority() int { return 10 }

func (defaultsSource) Load(k *koanf.Koanf) error {
	return k.Load(confmap.Provider(DefaultConfigAsMap(), "."), nil)
}

// fileSource loads an optional YAML config file. A missing file is not an
// error unless the user named it explicitly.
type fileSource struct {
	path string
}

func (s fileSource) Name() string  { return fmt.Sprintf("file(%s)", s.path) }
func (s fileSource) Priority() int { return 20 }

func (s fileSource) Load(k *koanf.Koanf) error {
	if s.path == "" {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", s.path)
	}
	return k.Load(file.Provider(s.path), yaml.Parser())
}

// envSource loads SKULK_-prefixed environment variables with the usual
// underscore-to-dot mapping: SKULK_SCAN_SOURCE_PORT -> scan.source_port is
// not expressible that way, so single-underscore keys map to dots and the
// first segment selects the section (SKULK_DNS_TIMEOUT -> dns.timeout).
type envSource struct{}

func (envSource) Name() string  { return "env" }
func (envSource) Priority() int { return 30 }

func (envSource) Load(k *koanf.Koanf) error {
	return k.Load(env.Provider("SKULK_", ".", func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(key, "SKULK_"))
		// Only the section separator becomes a dot; key-internal
		// underscores (source_port, require_synack) survive.
		return strings.Replace(key, "_", ".", 1)
	}), nil)
}

// flagSource loads explicitly-set cobra/pflag values. Flags are the highest
// priority source so a user can always override file and environment.
type flagSource struct {
	flags *pflag.FlagSet
}

func (flagSource) Name() string  { return "flags" }
func (flagSource) Priority() int { return 40 }

func (s flagSource) Load(k *koanf.Koanf) error {
	return k.Load(posflag.Provider(s.flags, ".", k), nil)
}
