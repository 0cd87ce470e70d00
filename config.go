package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigError is returned for any configuration problem that prevents
// the generator from starting: missing fields, unknown service
// references, out-of-range rates or probabilities.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

func configErrorf(field, format string, v ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, v...)}
}

// Config is the generation configuration, loaded once per run and
// treated as read-only afterwards.
type Config struct {
	Rates    map[string]float64 `yaml:"rates"`
	Topology TopologyConfig     `yaml:"topology"`
	Security SecurityConfig     `yaml:"security"`
	Business BusinessConfig     `yaml:"business"`
	Output   OutputConfig       `yaml:"output"`
}

type TopologyConfig struct {
	Hosts    []Host                    `yaml:"hosts"`
	Services map[string]ServiceProfile `yaml:"services"`
}

// Host is one simulated machine. Hosts advertise the services they
// run so generators can pick a believable origin per record.
type Host struct {
	Name     string   `yaml:"name"`
	IP       string   `yaml:"ip"`
	Role     string   `yaml:"role"`
	Services []string `yaml:"services"`
}

type ServiceProfile struct {
	Format string `yaml:"format"`
}

type SecurityConfig struct {
	AttackPatterns map[string]AttackConfig `yaml:"attack_patterns"`
}

type AttackConfig struct {
	Enabled         bool     `yaml:"enabled"`
	Intensity       float64  `yaml:"intensity"`
	SourceIPs       []string `yaml:"source_ips,omitempty"`
	TargetUsers     []string `yaml:"target_users,omitempty"`
	TargetEndpoints []string `yaml:"target_endpoints,omitempty"`
}

type BusinessConfig struct {
	PeakHours        PeakHoursConfig          `yaml:"peak_hours"`
	FailureScenarios map[string]FailureConfig `yaml:"failure_scenarios"`
}

type PeakHoursConfig struct {
	Start      string  `yaml:"start"`
	End        string  `yaml:"end"`
	Multiplier float64 `yaml:"multiplier"`
}

type FailureConfig struct {
	Probability    float64 `yaml:"probability"`
	SlowdownFactor float64 `yaml:"slowdown_factor,omitempty"`
}

type OutputConfig struct {
	Directory string         `yaml:"directory"`
	Rotation  RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSizeMB int      `yaml:"max_size_mb"`
	MaxAge    Duration `yaml:"max_age,omitempty"`
}

// Duration is a time.Duration that reads "90s"/"1h" style YAML values
// (plain integers are taken as nanoseconds).
type Duration time.Duration

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(n)
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// ReadConfig loads a YAML configuration document into cfg, replacing
// the fields present in the file.
func ReadConfig(cfg *Config, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	return dec.Decode(cfg)
}

// WriteConfig writes the effective configuration as YAML.
func WriteConfig(cfg *Config, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// parseClock parses an HH:MM wall-clock time into minutes after
// midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Validate checks the invariants all other components rely on. It
// returns the first problem found as a *ConfigError.
func (c *Config) Validate() error {
	if len(c.Rates) == 0 {
		return configErrorf("rates", "at least one service rate is required")
	}
	for service, rate := range c.Rates {
		if rate < 0 {
			return configErrorf("rates."+service, "rate must be >= 0, got %g", rate)
		}
		if _, ok := c.Topology.Services[service]; !ok {
			return configErrorf("rates."+service, "service not declared in topology.services")
		}
	}
	if len(c.Topology.Hosts) == 0 {
		return configErrorf("topology.hosts", "at least one host is required")
	}
	for i, h := range c.Topology.Hosts {
		if h.Name == "" || h.IP == "" {
			return configErrorf(fmt.Sprintf("topology.hosts[%d]", i), "name and ip are required")
		}
	}
	for name, p := range c.Security.AttackPatterns {
		if p.Intensity < 0 || p.Intensity > 1 {
			return configErrorf("security.attack_patterns."+name,
				"intensity must be in [0,1], got %g", p.Intensity)
		}
	}
	ph := c.Business.PeakHours
	if ph.Start != "" || ph.End != "" {
		if _, err := parseClock(ph.Start); err != nil {
			return configErrorf("business.peak_hours.start", "expected HH:MM, got %q", ph.Start)
		}
		if _, err := parseClock(ph.End); err != nil {
			return configErrorf("business.peak_hours.end", "expected HH:MM, got %q", ph.End)
		}
		if ph.Multiplier < 0 {
			return configErrorf("business.peak_hours.multiplier", "must be >= 0, got %g", ph.Multiplier)
		}
	}
	for name, f := range c.Business.FailureScenarios {
		if f.Probability < 0 || f.Probability > 1 {
			return configErrorf("business.failure_scenarios."+name,
				"probability must be in [0,1], got %g", f.Probability)
		}
	}
	if c.Output.Directory == "" {
		return configErrorf("output.directory", "is required")
	}
	if c.Output.Rotation.MaxSizeMB <= 0 {
		return configErrorf("output.rotation.max_size_mb", "must be > 0, got %d", c.Output.Rotation.MaxSizeMB)
	}
	if c.Output.Rotation.MaxAge < 0 {
		return configErrorf("output.rotation.max_age", "must be >= 0")
	}
	return nil
}

// DefaultConfig is the demo topology: ten services across four hosts
// with mild attack and failure scenarios. A config file overrides it.
func DefaultConfig() *Config {
	return &Config{
		Rates: map[string]float64{
			"nginx":         10,
			"java_app":      8,
			"kubernetes":    5,
			"system_access": 2,
			"ecommerce":     3,
			"api_gateway":   12,
			"database":      6,
			"docker":        4,
			"cdn":           15,
			"cicd":          0.5,
		},
		Topology: TopologyConfig{
			Hosts: []Host{
				{Name: "web-01", IP: "10.0.1.10", Role: "web", Services: []string{"nginx", "cdn"}},
				{Name: "app-01", IP: "10.0.1.20", Role: "app", Services: []string{"java_app", "api_gateway", "ecommerce"}},
				{Name: "db-01", IP: "10.0.1.30", Role: "database", Services: []string{"database"}},
				{Name: "infra-01", IP: "10.0.1.40", Role: "infra", Services: []string{"kubernetes", "docker", "system_access", "cicd"}},
			},
			Services: map[string]ServiceProfile{
				"nginx":         {Format: "clf"},
				"java_app":      {Format: "text"},
				"kubernetes":    {Format: "json"},
				"system_access": {Format: "syslog"},
				"ecommerce":     {Format: "json"},
				"api_gateway":   {Format: "json"},
				"database":      {Format: "text"},
				"docker":        {Format: "json"},
				"cdn":           {Format: "text"},
				"cicd":          {Format: "json"},
			},
		},
		Security: SecurityConfig{
			AttackPatterns: map[string]AttackConfig{
				"brute_force": {
					Enabled:     true,
					Intensity:   0.05,
					SourceIPs:   []string{"203.0.113.42", "203.0.113.77", "198.51.100.23"},
					TargetUsers: []string{"admin", "root", "administrator"},
				},
				"api_abuse": {
					Enabled:         true,
					Intensity:       0.02,
					SourceIPs:       []string{"198.51.100.99"},
					TargetEndpoints: []string{"/api/v1/auth/login", "/api/v1/payments"},
				},
			},
		},
		Business: BusinessConfig{
			PeakHours: PeakHoursConfig{Start: "09:00", End: "17:00", Multiplier: 2.5},
			FailureScenarios: map[string]FailureConfig{
				"payment_gateway_outage": {Probability: 0.02},
				"database_slowdown":      {Probability: 0.05, SlowdownFactor: 10},
			},
		},
		Output: OutputConfig{
			Directory: "./generated-logs",
			Rotation:  RotationConfig{MaxSizeMB: 100},
		},
	}
}
