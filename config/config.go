// Package config loads TypedMind tool settings from .typedmind.yaml and the environment.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/typedmind/generator"
	"github.com/viant/typedmind/parser"
	"github.com/viant/typedmind/validator"
	"gopkg.in/yaml.v3"
)

// FileName is the config file discovered by walking up from a checked document
const FileName = ".typedmind.yaml"

// Parser controls document parsing
type Parser struct {
	ValidateGrammar bool `yaml:"validateGrammar"`
	ErrorRecovery   bool `yaml:"errorRecovery"`
}

// Validator controls optional validation passes
type Validator struct {
	SkipOrphans     bool `yaml:"skipOrphans"`
	SkipExportCheck bool `yaml:"skipExportCheck"`
}

// Format controls generated text
type Format struct {
	Indent int `yaml:"indent"`
}

// Config represents tool settings
type Config struct {
	Parser    Parser    `yaml:"parser"`
	Validator Validator `yaml:"validator"`
	Format    Format    `yaml:"format"`
	Debug     bool      `yaml:"debug"`
	SentryDSN string    `yaml:"sentryDSN,omitempty"`
	URL       string    `yaml:"-"` // location the config was loaded from, empty for defaults
}

// DefaultConfig returns settings used when no config file is found
func DefaultConfig() *Config {
	return &Config{
		Parser: Parser{
			ValidateGrammar: true,
			ErrorRecovery:   true,
		},
		Format: Format{Indent: generator.DefaultIndent},
	}
}

// Load reads config from URL on top of the defaults
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", URL, err)
	}
	result := DefaultConfig()
	if err = yaml.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	result.URL = URL
	return result, nil
}

// Discover searches up from startDir for FileName and returns its location
func Discover(ctx context.Context, fs afs.Service, startDir string) (string, bool) {
	dir := startDir
	for {
		candidate := url.Join(url.Normalize(dir, file.Scheme), FileName)
		if ok, _ := fs.Exists(ctx, candidate); ok {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve loads the config discovered from startDir, falling back to defaults, and applies environment overrides
func Resolve(ctx context.Context, fs afs.Service, startDir string) (*Config, error) {
	result := DefaultConfig()
	if location, ok := Discover(ctx, fs, startDir); ok {
		loaded, err := Load(ctx, fs, location)
		if err != nil {
			return nil, err
		}
		result = loaded
	}
	result.ApplyEnv()
	return result, nil
}

// ApplyEnv overrides settings with TYPEDMIND_DEBUG, TYPEDMIND_SKIP_ORPHANS and SENTRY_DSN
func (c *Config) ApplyEnv() {
	c.Debug = getBool("TYPEDMIND_DEBUG", c.Debug)
	c.Validator.SkipOrphans = getBool("TYPEDMIND_SKIP_ORPHANS", c.Validator.SkipOrphans)
	c.SentryDSN = getEnv("SENTRY_DSN", c.SentryDSN)
}

// ParserOptions returns parser options for the config
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithGrammarValidation(c.Parser.ValidateGrammar),
		parser.WithErrorRecovery(c.Parser.ErrorRecovery),
	}
}

// ValidatorOptions returns validator options for the config
func (c *Config) ValidatorOptions() []validator.Option {
	return []validator.Option{
		validator.WithSkipOrphans(c.Validator.SkipOrphans),
		validator.WithSkipExportCheck(c.Validator.SkipExportCheck),
	}
}

// Generator returns a generator for the configured format
func (c *Config) Generator() *generator.Generator {
	return generator.New(generator.WithIndent(c.Format.Indent))
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
