// Package config resolves catalog settings from flags, environment, an
// optional .env file and the YAML config file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tbckr/catalog/internal/apperr"
	"github.com/tbckr/catalog/internal/output"
)

// ErrUnknownKey is returned for config keys catalog does not know.
var ErrUnknownKey = errors.New("unknown config key")

// Config is the fully resolved catalog configuration.
type Config struct {
	// ConfigFile is the path the settings were read from.
	ConfigFile string `mapstructure:"-"`

	Verbose bool   `mapstructure:"verbose"`
	Output  string `mapstructure:"output"`

	// BaseURL is the API root every endpoint path is joined onto.
	BaseURL      string `mapstructure:"base_url"`
	ServicesPath string `mapstructure:"services_path"`
	BranchesPath string `mapstructure:"branches_path"`

	// Proxy URL (http, https, socks5).
	Proxy     string        `mapstructure:"proxy"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	// RateLimit is the maximum requests per second; 0 disables pacing.
	RateLimit float64 `mapstructure:"rate_limit"`
	// Concurrency bounds parallel requests of multi-target commands.
	Concurrency int `mapstructure:"concurrency"`
}

// Default values, shared by flags and viper defaults.
const (
	DefaultOutput      = string(output.FormatTable)
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 4
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindDuration
	kindFloat
	kindInt
	kindFormat
	kindURL
)

// keys maps every settable key to how its value is parsed.
var keys = map[string]keyKind{
	"verbose":       kindBool,
	"output":        kindFormat,
	"base_url":      kindURL,
	"services_path": kindString,
	"branches_path": kindString,
	"proxy":         kindString,
	"user_agent":    kindString,
	"timeout":       kindDuration,
	"rate_limit":    kindFloat,
	"concurrency":   kindInt,
}

// ValidKeys returns every settable config key, sorted.
func ValidKeys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NormalizeKey converts a flag-style key ("rate-limit") to its config form ("rate_limit").
func NormalizeKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// ValidateKey returns ErrUnknownKey when key (in either form) is not settable.
func ValidateKey(key string) error {
	if _, ok := keys[NormalizeKey(key)]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// ParseValue converts the string form of a value into the type stored in the
// config file for key.
func ParseValue(key, value string) (any, error) {
	key = NormalizeKey(key)
	kind, ok := keys[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false, got %q", apperr.ErrInvalidInput, key, value)
		}
		return b, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative duration such as 10s, got %q", apperr.ErrInvalidInput, key, value)
		}
		return d.String(), nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number, got %q", apperr.ErrInvalidInput, key, value)
		}
		return f, nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s must be a positive integer, got %q", apperr.ErrInvalidInput, key, value)
		}
		return n, nil
	case kindFormat:
		if _, err := output.ParseFormat(value); err != nil {
			return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
		}
		return value, nil
	case kindURL:
		if err := validateBaseURL(value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return value, nil
	}
}

// KeyCompletions returns shell completion candidates for the value of key.
func KeyCompletions(key string) []string {
	switch keys[NormalizeKey(key)] {
	case kindBool:
		return []string{"true", "false"}
	case kindFormat:
		return output.Formats()
	default:
		return nil
	}
}

// Value returns the effective value of key rendered as a string.
func (c *Config) Value(key string) (string, error) {
	switch NormalizeKey(key) {
	case "verbose":
		return strconv.FormatBool(c.Verbose), nil
	case "output":
		return c.Output, nil
	case "base_url":
		return c.BaseURL, nil
	case "services_path":
		return c.ServicesPath, nil
	case "branches_path":
		return c.BranchesPath, nil
	case "proxy":
		return c.Proxy, nil
	case "user_agent":
		return c.UserAgent, nil
	case "timeout":
		return c.Timeout.String(), nil
	case "rate_limit":
		return strconv.FormatFloat(c.RateLimit, 'f', -1, 64), nil
	case "concurrency":
		return strconv.Itoa(c.Concurrency), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

// validate checks the cross-source result of Load.
func (c *Config) validate() error {
	if _, err := output.ParseFormat(c.Output); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %s", apperr.ErrInvalidInput, c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: rate_limit must not be negative, got %v", apperr.ErrInvalidInput, c.RateLimit)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", apperr.ErrInvalidInput, c.Concurrency)
	}
	if c.BaseURL != "" {
		return validateBaseURL(c.BaseURL)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url must be an absolute http(s) URL, got %q", apperr.ErrInvalidInput, raw)
	}
	return nil
}
