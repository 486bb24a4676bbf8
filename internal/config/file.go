package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "RESIZEHELPER_CONFIG"

// envVarPattern matches ${VAR_NAME} references.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadFile decodes the TOML file at path over cfg. Keys absent from the
// file keep their current values; unknown keys are rejected.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(substituteEnvVars(string(data)), cfg)
	if err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		ce := &ConfigError{Path: path}
		for _, k := range undecoded {
			ce.Errors = append(ce.Errors, fmt.Sprintf("unknown key %q", k.String()))
		}
		return ce
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// Unset variables are left unchanged.
func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match
	})
}

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./resizehelper.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "resizehelper", "config.toml")
}

// Discover finds an optional config file. Search order:
//  1. RESIZEHELPER_CONFIG environment variable (must exist)
//  2. ./resizehelper.toml
//  3. $XDG_CONFIG_HOME/resizehelper/config.toml
//
// Returns "" with a nil error when no file is found; the file is optional.
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfigPath, envPath, err)
		}
		return envPath, nil
	}
	for _, p := range []string{"./resizehelper.toml", DefaultPath()} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// LoadEnv loads KEY=VALUE pairs from the given .env files into the process
// environment. Variables already set are not overridden, and missing files
// are ignored. Used for FFMPEG_PATH and RESIZEHELPER_CONFIG.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ParseJobs parses a list of job specs, reporting every invalid entry.
func ParseJobs(specs []string, defaultDPI int) ([]Job, error) {
	jobs := make([]Job, 0, len(specs))
	var bad []string
	for _, s := range specs {
		j, err := ParseJob(s, defaultDPI)
		if err != nil {
			bad = append(bad, err.Error())
			continue
		}
		jobs = append(jobs, j)
	}
	if len(bad) > 0 {
		return nil, &ConfigError{Errors: bad}
	}
	return jobs, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
