package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// envVarPattern matches ${VAR_NAME} references in configuration values
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadEnvFiles loads .env and .env.local from the project root. Variables already
// present in the process environment win.
func LoadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// ExpandEnv replaces ${VAR} references with their values and reports
// the variables that are unset or empty.
func ExpandEnv(raw string) (string, []string) {
	var missing []string
	expanded := envVarPattern.ReplaceAllStringFunc(raw, func(ref string) string {
		name := envVarPattern.FindStringSubmatch(ref)[1]
		value := os.Getenv(name)
		if value == "" {
			missing = append(missing, name)
		}
		return value
	})
	return expanded, lo.Uniq(missing)
}

// DetectEnvVar checks if a raw value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 && matches[0] == rawValue {
		return matches[1], true
	}
	return "", false
}
