// Package config loads the earlyexit configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/earlyexit/internal/domain"
	m "github.com/mouse-blink/earlyexit/internal/model"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = ".earlyexit.yaml"

// Config holds all earlyexit configuration.
type Config struct {
	// Paths processed when none are given on the command line.
	Paths []string `yaml:"paths"`
	// Exclude lists regular expressions of paths to skip.
	Exclude []string `yaml:"exclude"`
	// Extensions collected when walking directories.
	Extensions []string `yaml:"extensions"`
	// Annotation is keep, add or remove.
	Annotation string `yaml:"annotation"`

	Response ResponseConfig `yaml:"response"`
	Handler  HandlerConfig  `yaml:"handler"`

	// Hints are "path:line" entries narrowing which sites are patched.
	Hints []string `yaml:"hints"`
	// HintsFile is a TypeScript compiler log to read hints from.
	HintsFile string `yaml:"hints_file"`
}

// ResponseConfig describes the response-emitting call.
type ResponseConfig struct {
	Identifier   string   `yaml:"identifier"`
	StatusMethod string   `yaml:"status_method"`
	SendMethods  []string `yaml:"send_methods"`
}

// HandlerConfig lists the parameter types of route handlers.
type HandlerConfig struct {
	RequestTypes  []string `yaml:"request_types"`
	ResponseTypes []string `yaml:"response_types"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	response := domain.DefaultResponseShape()
	handler := domain.DefaultHandlerShape()

	return &Config{
		Extensions: []string{".ts", ".js"},
		Annotation: string(m.AnnotationKeep),
		Response: ResponseConfig{
			Identifier:   response.Identifier,
			StatusMethod: response.StatusMethod,
			SendMethods:  response.SendMethods,
		},
		Handler: HandlerConfig{
			RequestTypes:  handler.RequestTypes,
			ResponseTypes: handler.ResponseTypes,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !m.AnnotationMode(c.Annotation).Valid() {
		return fmt.Errorf("invalid annotation mode: %q (valid: keep, add, remove)", c.Annotation)
	}

	if _, err := domain.NewRewriter(c.RewriteOptions()); err != nil {
		return fmt.Errorf("invalid rewrite options: %w", err)
	}

	for _, hint := range c.Hints {
		if _, err := domain.ParseHint(hint); err != nil {
			return err
		}
	}

	return nil
}

// RewriteOptions converts the configuration into rewriter options.
func (c *Config) RewriteOptions() domain.Options {
	return domain.Options{
		Response: domain.ResponseShape{
			Identifier:   c.Response.Identifier,
			StatusMethod: c.Response.StatusMethod,
			SendMethods:  c.Response.SendMethods,
		},
		Handler: domain.HandlerShape{
			RequestTypes:  c.Handler.RequestTypes,
			ResponseTypes: c.Handler.ResponseTypes,
		},
		Annotation: m.AnnotationMode(c.Annotation),
	}
}

// ResolveHints collects hints from Hints and HintsFile.
func (c *Config) ResolveHints() ([]m.Hint, error) {
	hints := make([]m.Hint, 0, len(c.Hints))

	for _, raw := range c.Hints {
		hint, err := domain.ParseHint(raw)
		if err != nil {
			return nil, err
		}

		hints = append(hints, hint)
	}

	if c.HintsFile == "" {
		return hints, nil
	}

	f, err := os.Open(c.HintsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open hints file: %w", err)
	}
	defer f.Close()

	fromLog, err := domain.ParseHintLog(f)
	if err != nil {
		return nil, err
	}

	return append(hints, fromLog...), nil
}

// PathList returns Paths as model paths.
func (c *Config) PathList() []m.Path {
	paths := make([]m.Path, 0, len(c.Paths))
	for _, path := range c.Paths {
		paths = append(paths, m.Path(path))
	}

	return paths
}
