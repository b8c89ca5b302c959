package configs

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/scrub/internal/errors"
	"github.com/PolarWolf314/scrub/internal/redact"
)

// MappingConfig is the on-disk form of the secret mapping.
type MappingConfig struct {
	File    string            `toml:"file,omitempty"`
	Secrets map[string]string `toml:"secrets"`
}

// Mapping returns the configured secrets as a redact.Mapping.
func (c *MappingConfig) Mapping() redact.Mapping {
	m := make(redact.Mapping, len(c.Secrets))
	for k, v := range c.Secrets {
		m[k] = v
	}
	return m
}

// LoadMappingConfig loads a mapping file.
// Returns ErrMappingNotFound if the file does not exist.
func LoadMappingConfig(path string) (*MappingConfig, error) {
	config := &MappingConfig{
		Secrets: make(map[string]string),
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrMappingNotFound, path)
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidMapping, path, err)
	}

	if config.Secrets == nil {
		config.Secrets = make(map[string]string)
	}

	return config, nil
}

// SaveMappingConfig writes a mapping file readable only by the current user.
func SaveMappingConfig(path string, config *MappingConfig) error {
	if err := SaveTOML(path, config, 0600); err != nil {
		return fmt.Errorf("failed to save mapping: %w", err)
	}
	return nil
}

// ResolveMappingConfig loads the mapping for a run.
//
// An explicit path must exist. Without one, DefaultMappingFile in repoRoot is
// used when present, otherwise the mapping is empty.
func ResolveMappingConfig(explicitPath, repoRoot string) (*MappingConfig, string, error) {
	if explicitPath != "" {
		config, err := LoadMappingConfig(explicitPath)
		return config, explicitPath, err
	}

	defaultPath := filepath.Join(repoRoot, DefaultMappingFile)
	if _, err := os.Stat(defaultPath); err == nil {
		config, err := LoadMappingConfig(defaultPath)
		return config, defaultPath, err
	}

	return &MappingConfig{Secrets: make(map[string]string)}, "", nil
}
