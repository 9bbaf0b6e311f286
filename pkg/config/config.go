package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/skulk-project/skulk/pkg/netutil"
)

// Global Koanf instance, initialized once at startup.
var (
	k    *koanf.Koanf
	once sync.Once
)

// InitGlobalConfig initializes the global Koanf instance.
// This should be called early in the application lifecycle, before Load.
func InitGlobalConfig() {
	once.Do(func() {
		k = koanf.New(".")
	})
}

// Manager handles loading and accessing application configuration.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex
}

// NewManager creates a new Manager backed by the global Koanf instance.
func NewManager() *Manager {
	InitGlobalConfig()
	return &Manager{
		koanfInstance: k,
	}
}

// DefaultConfig returns a Config populated with hardcoded default values.
// These serve as the baseline if no other sources override them.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "error",
			Format: "text",
		},
		DNS: DNSConfig{
			Timeout: 3.0,
		},
		Scan: ScanConfig{
			Ports:         "25,80,53,443,445,8080,8443",
			Timeout:       2.0,
			SourcePort:    5555,
			RequireSynAck: true,
		},
		Ping: PingConfig{
			Count:   1,
			Timeout: 3.0,
		},
	}
}

// Load loads configuration from the default source chain.
//
// Configuration precedence (highest to lowest):
//  1. Command-line flags (--timeout 5)
//  2. Environment variables (SKULK_DNS_TIMEOUT=5)
//  3. Config file (YAML, --config)
//  4. Default values
func (m *Manager) Load(flags *pflag.FlagSet, configFilePath string) error {
	return m.LoadWithSources(DefaultSources(configFilePath, flags))
}

// LoadWithSources loads configuration from the provided sources in priority
// order. Sources with lower priority values are loaded first; higher
// priority sources override lower priority values.
func (m *Manager) LoadWithSources(sources []ConfigSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Priority() < sources[j].Priority()
	})

	for _, src := range sources {
		if err := src.Load(m.koanfInstance); err != nil {
			return fmt.Errorf("error loading config from %s: %w", src.Name(), err)
		}
	}

	var newCfg Config
	if err := m.koanfInstance.UnmarshalWithConf("", &newCfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling final config: %w", err)
	}
	m.currentConfig = newCfg

	m.postProcessConfig()

	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfgCopy := m.currentConfig
	return cfgCopy
}

// GetValue retrieves a configuration value by key path.
// Example: GetValue("scan.source_port"). Returns nil if the key is absent.
func (m *Manager) GetValue(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.koanfInstance.Get(key)
}

// postProcessConfig expands derived values after loading and unmarshaling.
// The port spec may arrive as a YAML list or as a comma-separated string
// from the environment, so it is coerced before parsing.
func (m *Manager) postProcessConfig() {
	raw := m.koanfInstance.Get("scan.ports")

	spec := m.currentConfig.Scan.Ports
	if s, err := cast.ToStringE(raw); err == nil && s != "" {
		spec = s
	} else if list, err := cast.ToIntSliceE(raw); err == nil && len(list) > 0 {
		parts := make([]string, len(list))
		for i, p := range list {
			parts[i] = cast.ToString(p)
		}
		spec = ""
		for i, p := range parts {
			if i > 0 {
				spec += ","
			}
			spec += p
		}
	}

	ports, err := netutil.ParsePortString(spec)
	if err != nil || len(ports) == 0 {
		log.Warn().Str("ports", spec).Err(err).Msg("Invalid scan.ports value, falling back to defaults")
		ports, _ = netutil.ParsePortString(DefaultConfig().Scan.Ports)
	}
	m.currentConfig.Scan.Ports = spec
	m.currentConfig.Scan.portList = ports
}

// DefaultConfigAsMap converts the DefaultConfig struct to a map for Koanf's
// confmap provider. A bit manual, but it ensures Koanf knows all keys.
func DefaultConfigAsMap() map[string]any {
	def := DefaultConfig()
	return map[string]any{
		"log.level":  def.Log.Level,
		"log.format": def.Log.Format,

		"dns.timeout":     def.DNS.Timeout,
		"dns.wordlist":    def.DNS.Wordlist,
		"dns.numeric":     def.DNS.Numeric,
		"dns.nameservers": def.DNS.Nameservers,

		"scan.ports":          def.Scan.Ports,
		"scan.timeout":        def.Scan.Timeout,
		"scan.source_port":    def.Scan.SourcePort,
		"scan.require_synack": def.Scan.RequireSynAck,

		"ping.count":      def.Ping.Count,
		"ping.timeout":    def.Ping.Timeout,
		"ping.privileged": def.Ping.Privileged,
	}
}

// BindFlags defines command-line flags corresponding to configuration
// settings. Only flags whose koanf key matches a config path take part in
// the posflag source; command-specific flags are bound in cmd/skulk.
func BindFlags(flags *pflag.FlagSet) {
	var flagvar bool
	flags.BoolVar(&flagvar, "debug", false, "Enable debug logging")
}
