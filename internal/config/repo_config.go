package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultRepoConfigPath is where the gate looks for repository-level
// overrides when no config-path input is given.
const DefaultRepoConfigPath = ".otter-review.yml"

// RepoConfig holds optional per-repository overrides committed alongside
// the code under review.
type RepoConfig struct {
	// ProductName overrides the product short name for directive building
	ProductName string `yaml:"product_name"`

	// ExtraDirectives are additional skip tokens recognized in PR titles
	// and descriptions, matched with the same whole-token rules as the
	// built-in vocabulary
	ExtraDirectives []string `yaml:"extra_directives"`
}

// LoadRepoConfig loads the repository config file. A missing file is not
// an error: the gate falls back to the built-in vocabulary. Parse errors
// are returned so the caller can log and continue.
func LoadRepoConfig(path string) (*RepoConfig, error) {
	if path == "" {
		path = DefaultRepoConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read repo config file: %w", err)
	}

	var rc RepoConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse repo config file: %w", err)
	}

	return &rc, nil
}

// Merge applies repository-level overrides onto the environment config,
// returning the effective product name and extra directives.
func (c *Config) Merge(rc *RepoConfig) (product string, extra []string) {
	product = c.ProductName
	if rc == nil {
		return product, nil
	}
	if rc.ProductName != "" {
		product = rc.ProductName
	}
	return product, rc.ExtraDirectives
}
