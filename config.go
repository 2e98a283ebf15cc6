package commandant

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/commandant-mcp/commandant/service/process"
	"github.com/commandant-mcp/commandant/service/terminal"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from YAML or environment variables. The zero-value is
// useful - all nested fields inherit their package defaults.
type Config struct {
	Terminal terminal.Config `json:"terminal" yaml:"terminal"`
	Gate     GateConfig      `json:"gate" yaml:"gate"`
	Process  process.Config  `json:"process" yaml:"process"`
}

// GateConfig holds the command gate settings.
type GateConfig struct {
	// BlacklistURL locates the persisted blacklist document; any afs
	// addressable URL works, including mem:// in tests.
	BlacklistURL string `json:"blacklistURL" yaml:"blacklistURL"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Terminal: terminal.DefaultConfig(),
		Gate:     GateConfig{BlacklistURL: "config.json"},
		Process:  process.DefaultConfig(),
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Gate.BlacklistURL == "" {
		return fmt.Errorf("gate.blacklistURL must not be empty")
	}
	if c.Terminal.DefaultTimeoutMs < 0 {
		return fmt.Errorf("terminal.defaultTimeoutMs must be >= 0")
	}
	if c.Terminal.RetainCompleted < 0 {
		return fmt.Errorf("terminal.retainCompleted must be >= 0")
	}
	return nil
}

// LoadConfig reads a YAML config document from an afs URL, expanding
// ${env.KEY} expressions before parsing. Unset fields keep their defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	config := DefaultConfig()
	expanded := expandEnvExpr(string(data))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
