package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
// Every fixed filesystem location lives here so tests can point the
// pipelines at temporary directories.
type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	Lookup   LookupConfig   `toml:"lookup"`
	Transfer TransferConfig `toml:"transfer"`
	Runtime  RuntimeConfig  `toml:"runtime"`
}

// PathsConfig contains the per-user filesystem locations both pipelines use.
type PathsConfig struct {
	ImportDir string `toml:"import_dir"` // Managed auto-import directory for tagged audio
	SSHConfig string `toml:"ssh_config"` // SSH client config file
}

// LookupConfig contains identification and metadata catalog settings.
type LookupConfig struct {
	AcoustIDURL    string  `toml:"acoustid_url"`
	APIKeyEnv      string  `toml:"api_key_env"` // Environment variable read at lookup time
	MusicBrainzURL string  `toml:"musicbrainz_url"`
	UserAgent      string  `toml:"user_agent"`
	MinConfidence  float64 `toml:"min_confidence"`
}

// TransferConfig contains remote copy settings.
type TransferConfig struct {
	ConnectTimeoutSecs int      `toml:"connect_timeout_secs"`
	DefaultDests       []string `toml:"default_dests"` // Static destination suggestions
}

// RuntimeConfig contains isolated script runtime settings.
type RuntimeConfig struct {
	Root        string `toml:"root"`        // Per-tool runtimes live at <root>/<tool>
	Interpreter string `toml:"interpreter"` // Interpreter used to build runtimes
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
// Tilde-prefixed paths are expanded against the current user's home.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	config.expand()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.expand()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) expand() {
	c.Paths.ImportDir = ExpandHome(c.Paths.ImportDir)
	c.Paths.SSHConfig = ExpandHome(c.Paths.SSHConfig)
	c.Runtime.Root = ExpandHome(c.Runtime.Root)
}

// ExpandHome replaces a leading ~ with the current user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
