package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	base := func() *Config {
		return &Config{
			EndpointAddrHTTP:            ":8000",
			DatabaseDSN:                 "dsn",
			AccessTokenValidityDuration: 90 * time.Second,
			LogLevel:                    "info",
		}
	}

	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "45", "-l", "debug"},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 45 * time.Minute,
				LogLevel:                    "debug",
			},
		},
		{
			name: "no -t keeps sub-minute ttl from earlier sources",
			args: []string{"cmd", "-s", "secret", "-c", "ignored.json"},
			expected: &Config{
				EndpointAddrHTTP:            ":8000",
				DatabaseDSN:                 "dsn",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 90 * time.Second,
				LogLevel:                    "info",
			},
		},
		{
			name:        "non-numeric ttl panics",
			args:        []string{"cmd", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := base()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
