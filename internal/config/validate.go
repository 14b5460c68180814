package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

var attrNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Browser validation
	validBrowsers := map[string]bool{"chromium": true, "firefox": true, "webkit": true}
	if !validBrowsers[cfg.Browser.Name] {
		errs = append(errs, fmt.Sprintf("browser.name must be one of: chromium, firefox, webkit (got %q)", cfg.Browser.Name))
	}
	if cfg.Browser.NavigationTimeout.Std() <= 0 {
		errs = append(errs, "browser.navigation_timeout must be positive")
	}
	if cfg.Browser.ScriptTimeout.Std() <= 0 {
		errs = append(errs, "browser.script_timeout must be positive")
	}

	// Retry validation
	if cfg.Retry.MaxAttempts < 1 {
		errs = append(errs, "retry.max_attempts must be at least 1")
	}
	if cfg.Retry.Backoff.Std() < 0 {
		errs = append(errs, "retry.backoff must not be negative")
	}

	// Scan validation: an empty test-hook list just skips the strategy, but
	// every configured name must be a plausible attribute name.
	for _, attr := range cfg.Scan.TestHookAttributes {
		if !attrNamePattern.MatchString(attr) {
			errs = append(errs, fmt.Sprintf("scan.test_hook_attributes contains invalid attribute name %q", attr))
		}
	}

	// Synthesis validation
	if cfg.Synthesis.EmailLongLength < 6 {
		errs = append(errs, "synthesis.email_long_length must be at least 6")
	}

	// Output validation
	if cfg.Output.Root == "" {
		errs = append(errs, "output.root must not be empty")
	}
	if cfg.Output.ImportBase == "" {
		errs = append(errs, "output.import_base must not be empty")
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", "", fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
