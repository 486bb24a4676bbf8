package config

import (
	"fmt"
	"strings"
)

// ConfigError aggregates configuration errors.
type ConfigError struct {
	Path   string   // Config file path, when the errors came from a file.
	Errors []string // Validation errors.
}

func (e *ConfigError) Error() string {
	if len(e.Errors) == 0 {
		return ""
	}
	head := "invalid configuration:"
	if e.Path != "" {
		head = fmt.Sprintf("invalid configuration in %s:", e.Path)
	}
	if len(e.Errors) == 1 {
		return head + " " + e.Errors[0]
	}
	parts := []string{head}
	for _, msg := range e.Errors {
		parts = append(parts, "  - "+msg)
	}
	return strings.Join(parts, "\n")
}

// HasErrors returns true if there are any errors.
func (e *ConfigError) HasErrors() bool {
	return len(e.Errors) > 0
}
