package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("set default options", func(t *testing.T) {
		c := NewConfig()

		require.Equal(t, "", c.BaseURL, "base URL has no sensible default")
		require.Equal(t, "info", c.LogLevel, "default log level not set")
		require.Equal(t, "prod", c.Environment, "default environment not set")
		require.Equal(t, 10*time.Second, c.Timeout, "default timeout not set")
		require.Equal(t, "", c.CredentialsFile, "credentials file should be empty by default")
	})

	t.Run("load env", func(t *testing.T) {
		c := NewConfig()
		getenv := func(key string) string {
			switch key {
			case "API_BASE_URL":
				return "https://admin.example.com/api"
			case "LOG_LEVEL":
				return "debug"
			case "ENVIRONMENT":
				return "dev"
			case "HTTP_TIMEOUT":
				return "30s"
			case "CREDENTIALS_FILE":
				return "/tmp/credentials.json"
			default:
				return ""
			}
		}

		err := c.LoadEnv(getenv)

		require.NoError(t, err)
		require.Equal(t, "https://admin.example.com/api", c.BaseURL)
		require.Equal(t, "debug", c.LogLevel)
		require.Equal(t, "dev", c.Environment)
		require.Equal(t, 30*time.Second, c.Timeout)
		require.Equal(t, "/tmp/credentials.json", c.CredentialsFile)
	})

	t.Run("empty env keeps defaults", func(t *testing.T) {
		c := NewConfig()

		err := c.LoadEnv(func(string) string { return "" })

		require.NoError(t, err)
		require.Equal(t, 10*time.Second, c.Timeout)
	})

	t.Run("invalid timeout env", func(t *testing.T) {
		c := NewConfig()
		getenv := func(key string) string {
			if key == "HTTP_TIMEOUT" {
				return "not-a-duration"
			}
			return ""
		}

		err := c.LoadEnv(getenv)

		require.Error(t, err, "unparsable duration should be reported")
	})

	t.Run("parse flags", func(t *testing.T) {
		t.Run("valid flags", func(t *testing.T) {
			tests := []struct {
				name  string
				flags []string
			}{
				{
					name: "short",
					flags: []string{
						"-u", "https://admin.example.com/api",
						"-l", "debug",
						"-e", "dev",
						"-t", "30s",
						"-c", "/tmp/credentials.json",
					},
				},
				{
					name: "long",
					flags: []string{
						"--api-url", "https://admin.example.com/api",
						"--log-level", "debug",
						"--environment", "dev",
						"--timeout", "30s",
						"--credentials-file", "/tmp/credentials.json",
					},
				},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					c := NewConfig()

					err := c.ParseFlags(tt.flags)

					require.NoError(t, err, "correct flags must be parsed without error")
					require.Equal(t, "https://admin.example.com/api", c.BaseURL)
					require.Equal(t, "debug", c.LogLevel)
					require.Equal(t, "dev", c.Environment)
					require.Equal(t, 30*time.Second, c.Timeout)
					require.Equal(t, "/tmp/credentials.json", c.CredentialsFile)
				})
			}
		})

		t.Run("invalid flags", func(t *testing.T) {
			c := NewConfig()

			err := c.ParseFlags([]string{"--invalid-flag", "value"})

			require.Error(t, err, "invalid flag should return an error")
		})
	})

	t.Run("validate", func(t *testing.T) {
		t.Run("valid config", func(t *testing.T) {
			c := NewConfig()
			c.BaseURL = "https://admin.example.com/api"

			require.NoError(t, c.Validate())
		})

		t.Run("missing base url", func(t *testing.T) {
			c := NewConfig()

			require.Error(t, c.Validate())
		})

		t.Run("not an http url", func(t *testing.T) {
			c := NewConfig()
			c.BaseURL = "definitely not a url"

			require.Error(t, c.Validate())
		})
	})
}
