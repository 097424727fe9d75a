package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/earlyexit/internal/domain"
	m "github.com/mouse-blink/earlyexit/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, domain.DefaultOptions(), cfg.RewriteOptions())
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
paths:
  - src/...
exclude:
  - "\\.spec\\.ts$"
annotation: add
response:
  identifier: reply
  send_methods: [json, send]
handler:
  request_types: [Request, AuthRequest]
hints:
  - src/routes/users.ts:12
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []m.Path{"src/..."}, cfg.PathList())
	assert.Equal(t, []string{`\.spec\.ts$`}, cfg.Exclude)
	assert.Equal(t, []string{".ts", ".js"}, cfg.Extensions, "unset keys keep defaults")

	opts := cfg.RewriteOptions()
	assert.Equal(t, m.AnnotationAdd, opts.Annotation)
	assert.Equal(t, "reply", opts.Response.Identifier)
	assert.Equal(t, "status", opts.Response.StatusMethod)
	assert.Equal(t, []string{"json", "send"}, opts.Response.SendMethods)
	assert.Equal(t, []string{"Request", "AuthRequest"}, opts.Handler.RequestTypes)
	assert.Equal(t, []string{"Response"}, opts.Handler.ResponseTypes)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "paths: [unterminated\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "annotation", mutate: func(c *Config) { c.Annotation = "sometimes" }},
		{name: "identifier", mutate: func(c *Config) { c.Response.Identifier = "res.locals" }},
		{name: "send methods", mutate: func(c *Config) { c.Response.SendMethods = nil }},
		{name: "handler types", mutate: func(c *Config) { c.Handler.ResponseTypes = nil }},
		{name: "hint", mutate: func(c *Config) { c.Hints = []string{"src/a.ts"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			assert.Error(t, cfg.Validate())
		})
	}
}

func TestResolveHints(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tsc.log")
	require.NoError(t, os.WriteFile(logPath, []byte(
		"src/routes/drugs.ts(47,5): error TS7030: Not all code paths return a value.\n"), 0o644))

	cfg := DefaultConfig()
	cfg.Hints = []string{"src/routes/users.ts:12"}
	cfg.HintsFile = logPath

	hints, err := cfg.ResolveHints()
	require.NoError(t, err)

	assert.Equal(t, []m.Hint{
		{Path: "src/routes/users.ts", Line: 12},
		{Path: "src/routes/drugs.ts", Line: 47},
	}, hints)

	cfg.HintsFile = logPath + ".missing"
	_, err = cfg.ResolveHints()
	assert.Error(t, err)

	cfg.HintsFile = ""
	cfg.Hints = []string{"bad"}
	_, err = cfg.ResolveHints()
	assert.Error(t, err)
}
