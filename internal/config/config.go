package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

// Config is the top-level configuration struct. It is loaded once and
// threaded into the pipeline entry point; there is no process-wide mutable
// settings object.
type Config struct {
	Browser   BrowserConfig   `yaml:"browser"`
	Retry     RetryConfig     `yaml:"retry"`
	Scan      ScanConfig      `yaml:"scan"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Output    OutputConfig    `yaml:"output"`
	Templates TemplateConfig  `yaml:"templates"`
	Logging   LoggingConfig   `yaml:"logging"`
	DryRun    bool            `yaml:"dry_run"`
}

type BrowserConfig struct {
	Name              string   `yaml:"name"`     // chromium, firefox or webkit
	Headless          *bool    `yaml:"headless"` // pointer to distinguish unset from false
	NavigationTimeout Duration `yaml:"navigation_timeout"`
	ScriptTimeout     Duration `yaml:"script_timeout"`
}

// RetryConfig is the explicit retry policy for operations that can
// transiently fail (navigation, scan).
type RetryConfig struct {
	MaxAttempts int      `yaml:"max_attempts"`
	Backoff     Duration `yaml:"backoff"`
}

type ScanConfig struct {
	TestHookAttributes []string `yaml:"test_hook_attributes"`
	IncludeHidden      bool     `yaml:"include_hidden"`
}

// SynthesisConfig holds the explicit fallback constants used when markup
// declares no bound of its own.
type SynthesisConfig struct {
	EmailLongLength int `yaml:"email_long_length"`
	NeutralNumber   int `yaml:"neutral_number"`
}

type OutputConfig struct {
	Root       string `yaml:"root"`        // directory scenario bundles are written under
	ImportBase string `yaml:"import_base"` // module path prefix generated tests import page objects from
}

type TemplateConfig struct {
	Directory string `yaml:"directory"` // optional override dir; embedded templates used when empty
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Duration wraps time.Duration so timeouts can be written as "30s" in YAML.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Load reads a YAML configuration file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", "", "", "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", "", "", "failed to parse config file", err)
	}

	return cfg, nil
}
