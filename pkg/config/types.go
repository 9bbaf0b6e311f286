package config

import "time"

// Config is the merged application configuration.
type Config struct {
	Log  LogConfig  `koanf:"log"`
	DNS  DNSConfig  `koanf:"dns"`
	Scan ScanConfig `koanf:"scan"`
	Ping PingConfig `koanf:"ping"`
}

// LogConfig controls the zerolog diagnostic logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DNSConfig holds defaults for the dns command. Timeout is in seconds,
// matching the --timeout flag, and doubles as both the per-try and the
// overall resolver budget.
type DNSConfig struct {
	Timeout     float64  `koanf:"timeout"`
	Wordlist    string   `koanf:"wordlist"`
	Numeric     bool     `koanf:"numeric"`
	Nameservers []string `koanf:"nameservers"`
}

// TimeoutDuration converts the float-seconds timeout to a duration.
func (c DNSConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

// ScanConfig holds the packet-scan parameters. The scan command exposes
// none of these as flags; they are only reachable through the config file
// or environment.
type ScanConfig struct {
	Ports         string  `koanf:"ports"`
	Timeout       float64 `koanf:"timeout"`
	SourcePort    int     `koanf:"source_port"`
	RequireSynAck bool    `koanf:"require_synack"`

	portList []int
}

// TimeoutDuration converts the float-seconds timeout to a duration.
func (c ScanConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

// PortList returns the expanded port set parsed from Ports.
func (c ScanConfig) PortList() []int {
	return c.portList
}

// PingConfig holds the liveness-check parameters.
type PingConfig struct {
	Count      int     `koanf:"count"`
	Timeout    float64 `koanf:"timeout"`
	Privileged bool    `koanf:"privileged"`
}

// TimeoutDuration converts the float-seconds timeout to a duration.
func (c PingConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}
