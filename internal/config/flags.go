package config

import (
	"flag"
	"fmt"
	"io"
)

// CLIFlags carries command line overrides. A nil field means the flag was
// not given on the command line.
type CLIFlags struct {
	Port       *string
	LogLevel   *string
	DSN        *string
	NatsURL    *string
	ConfigPath *string
}

// ParseFlags parses command line arguments into CLIFlags. Only flags
// actually present in args end up non-nil.
func ParseFlags(args []string) (CLIFlags, error) {
	fs := flag.NewFlagSet("refdata", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	port := fs.String("port", "", "HTTP listen port")
	portShort := fs.String("p", "", "HTTP listen port (shorthand)")
	logLevel := fs.String("log-level", "", "log level: debug|info|warn|error")
	dsn := fs.String("dsn", "", "PostgreSQL connection string")
	natsURL := fs.String("nats-url", "", "NATS server URL")
	configPath := fs.String("config", "", "path to YAML config file")
	configShort := fs.String("c", "", "path to YAML config file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return CLIFlags{}, fmt.Errorf("parse flags: %w", err)
	}

	seen := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })

	var flags CLIFlags
	switch {
	case seen["port"]:
		flags.Port = port
	case seen["p"]:
		flags.Port = portShort
	}
	if seen["log-level"] {
		flags.LogLevel = logLevel
	}
	if seen["dsn"] {
		flags.DSN = dsn
	}
	if seen["nats-url"] {
		flags.NatsURL = natsURL
	}
	switch {
	case seen["config"]:
		flags.ConfigPath = configPath
	case seen["c"]:
		flags.ConfigPath = configShort
	}

	return flags, nil
}

// applyCLI overlays non-nil flag values onto cfg. CLI flags sit at the top
// of the precedence hierarchy.
func applyCLI(cfg *Config, flags CLIFlags) {
	if flags.Port != nil {
		cfg.Server.Port = *flags.Port
	}
	if flags.LogLevel != nil {
		cfg.Logging.Level = *flags.LogLevel
	}
	if flags.DSN != nil {
		cfg.Storage.Postgres.DSN = *flags.DSN
	}
	if flags.NatsURL != nil {
		cfg.NATS.URL = *flags.NatsURL
	}
}

// LoadWithCLI returns a Config using the full hierarchy:
// defaults < YAML < ENV < CLI. The second return value is the YAML path
// that was consulted.
func LoadWithCLI(flags CLIFlags) (*Config, string, error) {
	path := DefaultConfigFile
	if flags.ConfigPath != nil {
		path = *flags.ConfigPath
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, path); err != nil {
		return nil, "", fmt.Errorf("config yaml: %w", err)
	}
	loadEnv(&cfg)
	applyCLI(&cfg, flags)

	if err := validate(&cfg); err != nil {
		return nil, "", fmt.Errorf("config validate: %w", err)
	}

	return &cfg, path, nil
}
