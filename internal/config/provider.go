package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	LoadEnvFiles(projectRoot)

	project, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	artifactsDir := project.Paths.Artifacts
	if override := v.GetString("artifacts"); override != "" {
		artifactsDir = override
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        resolvePath(projectRoot, project.Paths.Registry),
		ArtifactsDir:   resolvePath(projectRoot, artifactsDir),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Yes:            v.GetBool("yes"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		Confirmations:  v.GetUint64("confirmations"),
		Project:        project,
	}
	if cfg.Confirmations == 0 {
		cfg.Confirmations = 1
	}

	networkName := v.GetString("network")
	network, err := NewNetworkResolver(projectRoot, project).Resolve(networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	if url := v.GetString("rpc_url"); url != "" {
		network.RPCURL = url
	}
	cfg.Network = network

	return cfg, nil
}

// SetupViper creates and configures a viper instance.
// Precedence: flags > SOLSCRIPTS_* env > .solscripts/config.local.json > defaults.
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, LocalConfigDir))

	v.SetEnvPrefix("SOLSCRIPTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("network", "hardhat")
	v.SetDefault("timeout", "5m")
	v.SetDefault("confirmations", 1)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("yes", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "Warning: Failed to read local config: %v\n", err)
		}
	}

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
