package config

// ProjectFileName is the project configuration file looked up from the working directory upwards
const ProjectFileName = "solscripts.toml"

// ProjectConfig is the decoded solscripts.toml
type ProjectConfig struct {
	Paths    PathsConfig              `toml:"paths"`
	Networks map[string]NetworkConfig `toml:"networks"`

	// Source is the file the config was read from; empty when defaults were used
	Source string `toml:"-"`
}

// PathsConfig locates the artifacts and the deployment registry relative to the project root
type PathsConfig struct {
	Artifacts string `toml:"artifacts"`
	Registry  string `toml:"registry"`
}

// NetworkConfig is one [networks.<name>] table, before env expansion
type NetworkConfig struct {
	URL        string   `toml:"url"`
	Accounts   []string `toml:"accounts"`
	GasPrice   uint64   `toml:"gas_price"`
	ChainID    uint64   `toml:"chain_id"`
	MinBalance string   `toml:"min_balance"`
	Dev        bool     `toml:"dev"`
}
