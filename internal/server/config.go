package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Wheel  *WheelSettings `hcl:"wheel,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`

	// DataDir is where session state lives.
	DataDir string `hcl:"data_dir,optional"`

	// Store selects the session backend: "file" or "sqlite".
	Store string `hcl:"store,optional"`
}

// WheelSettings tunes the wheel game's presentation timing.
type WheelSettings struct {
	// SpinDelayMs is how long the spin outcome is held back so the client
	// can animate. The outcome itself is computed and persisted up front.
	SpinDelayMs int `hcl:"spin_delay_ms,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
			DataDir:  "partytable-data",
			Store:    "file",
		},
		Wheel: &WheelSettings{SpinDelayMs: 3000},
	}
}

// LoadConfig loads configuration from an HCL file, applying defaults for
// anything unset. A missing file yields the default configuration.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Server.DataDir == "" {
		cfg.Server.DataDir = "partytable-data"
	}
	if cfg.Server.Store == "" {
		cfg.Server.Store = "file"
	}
	if cfg.Wheel == nil {
		cfg.Wheel = &WheelSettings{}
	}
	if cfg.Wheel.SpinDelayMs == 0 {
		cfg.Wheel.SpinDelayMs = 3000
	}

	return &cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.Store != "file" && c.Server.Store != "sqlite" {
		return fmt.Errorf("invalid store backend %q (want file or sqlite)", c.Server.Store)
	}
	if c.Wheel.SpinDelayMs < 0 {
		return fmt.Errorf("spin delay must not be negative")
	}
	return nil
}

// ListenAddress returns the full address to bind.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
