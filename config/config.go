package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nkiryanov/warehub/logger"
)

const (
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
	defaultTimeout      = 10 * time.Second
)

var validate = validator.New()

type Config struct {
	// Base URL of the warehouse admin API, e.g. "https://admin.example.com/api"
	// The only required value
	BaseURL string `validate:"required,http_url"`

	// Default logging level
	LogLevel string

	// Environment (dev, prod)
	Environment string

	// Per request timeout applied to every API call
	Timeout time.Duration `validate:"gt=0"`

	// Path to the persisted credentials file
	// Empty means credentials live in memory only and die with the process
	CredentialsFile string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		Environment: defaultEnvironment,
		Timeout:     defaultTimeout,
	}
}

// Load variables from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		return c.LoadEnv(func(key string) string {
			return envMap[key]
		})
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) error {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) error {
		return func(value string) error {
			if value != "" {
				*o = value
			}
			return nil
		}
	}
	setDuration := func(o *time.Duration) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", value, err)
			}
			*o = d
			return nil
		}
	}

	envMap := map[string]func(string) error{
		"API_BASE_URL":     setString(&c.BaseURL),
		"LOG_LEVEL":        setString(&c.LogLevel),
		"ENVIRONMENT":      setString(&c.Environment),
		"HTTP_TIMEOUT":     setDuration(&c.Timeout),
		"CREDENTIALS_FILE": setString(&c.CredentialsFile),
	}

	for key, parseFn := range envMap {
		if err := parseFn(getenv(key)); err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
	}

	return nil
}

// ParseFlags lets a host binary override config values from its arguments.
func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("warehub", pflag.ContinueOnError)

	fs.StringVarP(&c.BaseURL, "api-url", "u", c.BaseURL, "Base URL of the warehouse admin API")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.DurationVarP(&c.Timeout, "timeout", "t", c.Timeout, "Per request timeout")
	fs.StringVarP(&c.CredentialsFile, "credentials-file", "c", c.CredentialsFile, "Path to the persisted credentials file")

	return fs.Parse(args)
}

// Validate checks the assembled config before the client is constructed.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
