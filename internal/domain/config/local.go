package config

// LocalConfig represents the local solscripts configuration
type LocalConfig struct {
	Network       string `json:"network,omitempty"`
	Confirmations uint64 `json:"confirmations,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork       ConfigKey = "network"
	ConfigKeyConfirmations ConfigKey = "confirmations"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyConfirmations,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == key {
			return true
		}
	}
	return false
}
