package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultHost        = "fritz.box"
	DefaultPasswordEnv = "FRITZ_PASSWORD"
	DefaultTimeout     = 5 * time.Second
	DefaultListen      = ":9133"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
)

// Auth endpoint variants.
const (
	AuthAuto   = "auto"
	AuthLegacy = "legacy"
	AuthModern = "modern"
)

// Status page formats.
const (
	FormatAuto   = "auto"
	FormatScript = "script"
	FormatXML    = "xml"
)

// Config is the top-level configuration.
type Config struct {
	Device  Device  `yaml:"device"`
	Serve   Serve   `yaml:"serve"`
	Logging Logging `yaml:"logging"`
}

// Device describes the router to poll.
type Device struct {
	// Host is the hostname or IP (optionally host:port) of the router.
	Host string `yaml:"host" validate:"required,hostname_rfc1123|hostname_port|ip"`

	// Username is only sent by the modern login endpoint. Empty means the
	// device's password-only login.
	Username string `yaml:"username"`

	// PasswordEnv is the name of the environment variable that holds the
	// password.
	PasswordEnv string `yaml:"password_env" validate:"required"`

	// Auth selects the login endpoint shape: auto | legacy | modern.
	Auth string `yaml:"auth" validate:"oneof=auto legacy modern"`

	// Format selects the status page parser: auto | script | xml.
	Format string `yaml:"format" validate:"oneof=auto script xml"`

	// Page overrides the status page path. Empty uses the endpoint default.
	Page string `yaml:"page"`

	// Timeout bounds each HTTP request to the device.
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`

	// DumpPage, when set, is a file path the raw status page is written to
	// before parsing.
	DumpPage string `yaml:"dump_page"`
}

// Password returns the device password resolved from the environment.
// Returns empty string if PasswordEnv is unset or the variable is not found.
func (d Device) Password() string {
	if d.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(d.PasswordEnv)
}

// Serve holds the exporter settings.
type Serve struct {
	// Listen is the address the /metrics endpoint binds to.
	Listen string `yaml:"listen" validate:"required"`
}

// Logging configures the stderr logger.
type Logging struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a Config from the Munin plugin environment.
//
// host is the instance name taken from the wildcard plugin name; the "host"
// variable overrides it. The password is read from "password".
func FromEnv(host string) (*Config, error) {
	cfg := defaults()
	cfg.Device.PasswordEnv = "password"
	cfg.Logging.Format = "text"

	if host != "" {
		cfg.Device.Host = host
	}
	if v, ok := os.LookupEnv("host"); ok && v != "" {
		cfg.Device.Host = v
	}
	if v, ok := os.LookupEnv("username"); ok {
		cfg.Device.Username = v
	}
	if v, ok := os.LookupEnv("fritz_auth"); ok && v != "" {
		cfg.Device.Auth = v
	}
	if v, ok := os.LookupEnv("fritz_format"); ok && v != "" {
		cfg.Device.Format = v
	}
	if v, ok := os.LookupEnv("fritz_page"); ok {
		cfg.Device.Page = v
	}
	if v, ok := os.LookupEnv("fritz_timeout"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: fritz_timeout: %w", err)
		}
		cfg.Device.Timeout = d
	}
	if v, ok := os.LookupEnv("fritz_log_level"); ok && v != "" {
		cfg.Logging.Level = v
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Device: Device{
			Host:        DefaultHost,
			PasswordEnv: DefaultPasswordEnv,
			Auth:        AuthAuto,
			Format:      FormatAuto,
			Timeout:     DefaultTimeout,
		},
		Serve: Serve{
			Listen: DefaultListen,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
