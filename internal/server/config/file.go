package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
	"github.com/dmitrijs2005/todokeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations use
// timex.Duration so both "30m" and integer nanoseconds are accepted.
// Fields left out of the file keep their previous values.
type FileConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays values from the file named by -c / -config.
// The format is chosen by extension: .yaml and .yml are YAML, anything else
// is JSON. An unreadable or malformed file panics, as flags do.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func decodeFile(path string, data []byte) (*FileConfig, error) {
	fc := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("parse json config %s: %w", path, err)
		}
	}

	return fc, nil
}

func (fc *FileConfig) apply(config *Config) {
	if fc.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = fc.EndpointAddrHTTP
	}
	if fc.DatabaseDSN != "" {
		config.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SecretKey != "" {
		config.SecretKey = fc.SecretKey
	}
	if fc.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.LogLevel != "" {
		config.LogLevel = fc.LogLevel
	}
}
