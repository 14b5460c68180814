package config

import "time"

// DefaultConfig returns a Config with sensible default values. A long email
// probe is 132 characters (the local part caps at 64, the rest goes to the
// domain) and 42 is the neutral value for numeric fields without declared
// bounds.
func DefaultConfig() *Config {
	headless := true
	return &Config{
		Browser: BrowserConfig{
			Name:              "chromium",
			Headless:          &headless,
			NavigationTimeout: Duration(30 * time.Second),
			ScriptTimeout:     Duration(10 * time.Second),
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			Backoff:     Duration(500 * time.Millisecond),
		},
		Scan: ScanConfig{
			TestHookAttributes: []string{"data-testid", "data-cy"},
			IncludeHidden:      false,
		},
		Synthesis: SynthesisConfig{
			EmailLongLength: 132,
			NeutralNumber:   42,
		},
		Output: OutputConfig{
			Root:       "scenarios",
			ImportBase: "example.com/e2e/scenarios",
		},
		Templates: TemplateConfig{
			Directory: "",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		DryRun: false,
	}
}
