package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
)

const (
	// LocalConfigDir holds config.local.json
	LocalConfigDir = ".solscripts"

	defaultRegistryDir = ".solscripts"
	hardhatArtifacts   = "artifacts"
	foundryArtifacts   = "out"
)

// projectMarkers are checked in priority order; each one is searched across all ancestors
// before the next is considered.
var projectMarkers = [][]string{
	{config.ProjectFileName},
	{"hardhat.config.ts", "hardhat.config.js"},
	{"foundry.toml"},
}

// ErrNoProject is returned when no project marker is found above the start directory
var ErrNoProject = errors.New("not in a solscripts, Hardhat or Foundry project")

// FindProjectRoot walks up from the current directory to find the project root
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindProjectRootFrom(dir)
}

// FindProjectRootFrom walks up from dir to find the project root
func FindProjectRootFrom(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for _, markers := range projectMarkers {
		if root, ok := findUp(dir, markers); ok {
			return root, nil
		}
	}
	return "", ErrNoProject
}

func findUp(dir string, markers []string) (string, bool) {
	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadProjectConfig reads solscripts.toml from the project root. A missing file
// yields defaults: artifacts from Hardhat's "artifacts" or Foundry's "out".
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	cfg := &config.ProjectConfig{
		Networks: map[string]config.NetworkConfig{},
	}

	path := filepath.Join(projectRoot, config.ProjectFileName)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", config.ProjectFileName, err)
		}
		cfg.Source = path
	}

	if cfg.Networks == nil {
		cfg.Networks = map[string]config.NetworkConfig{}
	}
	if cfg.Paths.Artifacts == "" {
		cfg.Paths.Artifacts = defaultArtifactsDir(projectRoot)
	}
	if cfg.Paths.Registry == "" {
		cfg.Paths.Registry = defaultRegistryDir
	}

	return cfg, nil
}

func defaultArtifactsDir(projectRoot string) string {
	if _, err := os.Stat(filepath.Join(projectRoot, hardhatArtifacts)); err == nil {
		return hardhatArtifacts
	}
	if _, err := os.Stat(filepath.Join(projectRoot, "foundry.toml")); err == nil {
		return foundryArtifacts
	}
	return hardhatArtifacts
}

// resolvePath makes path absolute relative to the project root
func resolvePath(projectRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}
