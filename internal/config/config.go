// Package config loads the optional pgload.yaml found in a source directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the source directory.
const ConfigFileName = "pgload.yaml"

type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// LoadConfig holds load options. Pointer fields distinguish "unset" from
// an explicit false or zero.
type LoadConfig struct {
	Schema          string `yaml:"schema"`
	Extension       string `yaml:"extension"`
	Encoding        string `yaml:"encoding"`
	Delimiter       string `yaml:"delimiter"`
	PreviewRows     *int   `yaml:"preview_rows"`
	ContinueOnError *bool  `yaml:"continue_on_error"`
	Verify          *bool  `yaml:"verify"`
	CreateDatabase  *bool  `yaml:"create_database"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Load       LoadConfig       `yaml:"load"`
	Timeout    string           `yaml:"timeout"`
}

// Load reads pgload.yaml from sourcePath. Unknown keys are rejected so a
// misspelled option does not silently fall back to its default.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}

func (c *ProjectConfig) validate() error {
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Load.DelimiterRune(); err != nil {
		return err
	}
	if c.Load.PreviewRows != nil && *c.Load.PreviewRows < 0 {
		return fmt.Errorf("load.preview_rows cannot be negative")
	}
	return nil
}

// TimeoutDuration parses Timeout. Zero means unset.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout %q cannot be negative", c.Timeout)
	}
	return d, nil
}

// DelimiterRune returns the configured delimiter. Zero means unset.
func (l *LoadConfig) DelimiterRune() (rune, error) {
	if l.Delimiter == "" {
		return 0, nil
	}
	return ParseDelimiter(l.Delimiter)
}

// ParseDelimiter accepts exactly one character, or the escapes "\t" and "tab".
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter %q must be a single character", s)
	}
	return r, nil
}
