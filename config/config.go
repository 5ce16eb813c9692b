// Package config loads the blobserver command's configuration from
// flags, environment variables and defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultHost     = "0.0.0.0"
	defaultPort     = 8080
	defaultLogLevel = "info"
	defaultLogOutput = "stderr"

	envPrefix = "BLOBDIFF"
)

// Config holds the blobserver command's configuration.
type Config struct {
	Host string    `mapstructure:"host"`
	Port int       `mapstructure:"port"`
	Log  LogConfig `mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Load parses command-line flags (falling back to environment variables
// prefixed with BLOBDIFF_, then defaults) into a Config.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("blobserver", flag.ContinueOnError)
	v := viper.New()

	v.SetDefault("host", defaultHost)
	v.SetDefault("port", defaultPort)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.output", defaultLogOutput)

	fs.StringP("host", "h", defaultHost, "HTTP server bind host")
	fs.IntP("port", "p", defaultPort, "HTTP server bind port")
	fs.StringP("log.level", "l", defaultLogLevel, "log level (debug, info, warn, error)")
	fs.StringP("log.output", "o", defaultLogOutput, "log output (stdout, stderr or filepath)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "blobserver: recover and decode EIP-4844 rollup state-diff blobs over HTTP\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blobserver [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables are also available, prefixed with %s_,\n", envPrefix)
		fmt.Fprintf(os.Stderr, "  with dots replaced by underscores (e.g. %s_LOG_LEVEL).\n", envPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}
