package config

import (
	"fmt"
	"strings"
)

// Validate checks every value and reports all problems in one error.
func (c Config) Validate() error {
	var errors []string

	if err := c.Render.Validate(); err != nil {
		errors = append(errors, err.Error())
	}
	if err := c.Viewport.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if c.MaxThreads <= 0 {
		errors = append(errors, fmt.Sprintf("max_threads must be positive, got: %d", c.MaxThreads))
	}

	switch c.StoreKind {
	case "text", "sqlite":
	default:
		errors = append(errors, fmt.Sprintf("store.kind must be text or sqlite, got: %q", c.StoreKind))
	}
	if c.StorePath == "" {
		errors = append(errors, "store.path must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}
	return nil
}
