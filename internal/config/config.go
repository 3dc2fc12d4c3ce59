package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonconv/internal/errors"
	"github.com/mcncl/jsonconv/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. JSONCONV_TABLE_NAME.
const EnvPrefix = "JSONCONV_"

// FileNames are the config file names looked up in each directory, in order.
var FileNames = []string{".jsonconv.yml", ".jsonconv.yaml", "jsonconv.yml", "jsonconv.yaml"}

// Config represents the complete configuration for jsonconv
type Config struct {
	Format    string    `yaml:"format"`
	Indent    int       `yaml:"indent"`
	TableName string    `yaml:"table_name"`
	RootName  string    `yaml:"root_name"`
	Pretty    bool      `yaml:"pretty"`
	Stream    bool      `yaml:"stream"`
	Dev       DevConfig `yaml:"dev"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Overrides holds the command-line values that were set explicitly.
// A nil field leaves the config file or environment value in place.
type Overrides struct {
	Format    *string
	Indent    *int
	TableName *string
	RootName  *string
	Debug     *bool
}

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// NewConfig creates a new Config with default values.
// RootName stays empty so every generator falls back to its own default.
func NewConfig() *Config {
	return &Config{
		Format:    string(models.FormatYAML),
		Indent:    models.DefaultIndent,
		TableName: models.DefaultTableName,
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in dir and its parents.
// It returns an empty string when none is found.
func FindConfigFile(fs afero.Fs, dir string) string {
	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range FileNames {
			configPath := filepath.Join(currentDir, name)
			if info, err := fs.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// EnvName returns the environment variable that overrides field, e.g. "TableName" -> "JSONCONV_TABLE_NAME".
func EnvName(field string) string {
	return EnvPrefix + strcase.ToScreamingSnake(field)
}

// ApplyEnv overrides values from environment variables read through lookup.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	strs := []struct {
		field string
		dst   *string
	}{
		{"Format", &c.Format},
		{"TableName", &c.TableName},
		{"RootName", &c.RootName},
	}
	for _, s := range strs {
		if v, ok := lookup(EnvName(s.field)); ok {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvName("Indent")); ok {
		indent, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.NewConfigError(fmt.Sprintf("%s must be an integer, got '%s'", EnvName("Indent"), v), err)
		}
		c.Indent = indent
	}

	bools := []struct {
		field string
		dst   *bool
	}{
		{"Pretty", &c.Pretty},
		{"Stream", &c.Stream},
		{"Debug", &c.Dev.Debug},
	}
	for _, b := range bools {
		v, ok := lookup(EnvName(b.field))
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.NewConfigError(fmt.Sprintf("%s must be a boolean, got '%s'", EnvName(b.field), v), err)
		}
		*b.dst = parsed
	}

	return c.Validate()
}

// ApplyOverrides copies every explicitly set command-line value into the config.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.Format != nil {
		c.Format = *o.Format
	}
	if o.Indent != nil {
		c.Indent = *o.Indent
	}
	if o.TableName != nil {
		c.TableName = *o.TableName
	}
	if o.RootName != nil {
		c.RootName = *o.RootName
	}
	if o.Debug != nil {
		c.Dev.Debug = *o.Debug
	}
	return c.Validate()
}

// Validate normalizes the format name and rejects values no generator can use.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = string(models.FormatYAML)
	}
	if c.Indent < 0 {
		return errors.NewConfigError(fmt.Sprintf("indent must not be negative, got %d", c.Indent), nil)
	}
	return nil
}

// Options converts the config into conversion options.
func (c *Config) Options() models.Options {
	return models.Options{
		Format:    models.Format(c.Format),
		Indent:    c.Indent,
		TableName: c.TableName,
		RootName:  c.RootName,
		Pretty:    c.Pretty,
		Stream:    c.Stream,
	}
}

// LoadConfigWithCLI resolves the configuration with precedence
// defaults < config file < environment < explicit command-line flags.
// An empty configPath skips the file.
func LoadConfigWithCLI(fs afero.Fs, configPath string, lookup LookupFunc, cli Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(fs, configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(cli); err != nil {
		return nil, err
	}
	return cfg, nil
}
