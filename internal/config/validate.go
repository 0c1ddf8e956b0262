package config

import (
	"fmt"
	"time"

	"github.com/yourusername/borders/internal/types"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := validateBorder(&c.Border); err != nil {
		return fmt.Errorf("border: %w", err)
	}
	if err := validateOverview(&c.Overview); err != nil {
		return fmt.Errorf("overview: %w", err)
	}
	return nil
}

func validateBorder(b *BorderConfig) error {
	if b.Width <= 0 {
		return fmt.Errorf("width must be positive, got %g", b.Width)
	}
	if _, err := types.ParseColor(b.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	return nil
}

func validateOverview(o *OverviewConfig) error {
	if err := validateInterval("initialDelay", o.InitialDelay, false); err != nil {
		return err
	}
	return validateInterval("pollInterval", o.PollInterval, true)
}

func validateInterval(name, value string, positive bool) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d < 0 || (positive && d == 0) {
		return fmt.Errorf("%s out of range: %s", name, value)
	}
	return nil
}
