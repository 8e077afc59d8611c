package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tbckr/catalog/internal/appdir"
)

// EnvPrefix prefixes every environment variable catalog reads (CATALOG_BASE_URL, ...).
const EnvPrefix = "CATALOG"

// DotEnvFile is loaded from the working directory when present. Variables
// already set in the environment are not overridden.
const DotEnvFile = ".env"

// RegisterFlags adds every config flag to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default: $XDG_CONFIG_HOME/catalog/config.yaml)")
	flags.BoolP("verbose", "v", false, "enable verbose logging (debug level)")
	flags.StringP("output", "o", DefaultOutput, "output format: table, json, plain")
	flags.String("base-url", "", "API base URL, e.g. https://api.example.com")
	flags.String("services-path", "", "path of the services endpoint (default \"/services\")")
	flags.String("branches-path", "", "path of the branches endpoint (default \"/branches\")")
	flags.String("proxy", "", "proxy URL (http, https or socks5, e.g. socks5://127.0.0.1:9050)")
	flags.String("user-agent", "", "custom User-Agent string (default: catalog/<version>)")
	flags.Duration("timeout", DefaultTimeout, "per-request timeout (0 disables)")
	flags.Float64("rate-limit", 0, "maximum requests per second (0 disables)")
	flags.IntP("concurrency", "c", DefaultConcurrency, "parallel requests when fetching several targets")
}

// DefaultConfigPath returns the OS-appropriate default config file path.
func DefaultConfigPath() (string, error) {
	dir, err := appdir.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load resolves the configuration. Precedence, highest first: flags set on
// the command line, CATALOG_* environment variables (including those from
// .env), the config file, defaults. The config file is created empty with
// 0600 permissions when missing.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}

	path, err := flags.GetString("config")
	if err != nil || path == "" {
		if path, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	if err := appdir.EnsureFile(path); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	for _, key := range ValidKeys() {
		if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %q: %w", f.Name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.ConfigFile = path

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults mirrors the flag defaults so they also apply when no flag set is bound.
func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("base_url", "")
	v.SetDefault("services_path", "")
	v.SetDefault("branches_path", "")
	v.SetDefault("proxy", "")
	v.SetDefault("user_agent", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("concurrency", DefaultConcurrency)
}
