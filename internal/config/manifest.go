package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional per-project manifest, looked up in the project root.
const ManifestFile = ".preflight.yaml"

// Manifest holds project-level overrides checked into the repository
type Manifest struct {
	EnvFile      string   `yaml:"env_file"`
	ClaudeConfig string   `yaml:"claude_config"`
	SystemPrompt string   `yaml:"system_prompt"`
	Runtime      string   `yaml:"runtime"`
	RequiredVars []string `yaml:"required_vars"`
}

// LoadManifest reads the manifest from root. A missing manifest is not an error
// and yields nil.
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	return &m, nil
}
