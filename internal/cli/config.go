package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config holds CLI configuration options.
type Config struct {
	// Capacities of segments appended to any archive the CLI writes to.
	// The first segment of a new archive is sized separately.
	DirsPerSegment  uint32 `json:"dirs_per_segment,omitempty"`
	FilesPerSegment uint32 `json:"files_per_segment,omitempty"`

	// Detailed turns on -d/--detailed by default: sizes in listings and
	// per-item lines in add.
	Detailed bool `json:"detailed,omitempty"`
}

// ConfigFileName is the default config file name, looked up in the working
// directory.
const ConfigFileName = ".baf.json"

// LoadConfig loads configuration from the explicit path, or from
// ConfigFileName in the working directory if it exists. The file is HuJSON:
// JSON with comments and trailing commas allowed.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := json.Unmarshal(std, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}
