package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xll-gen/lttng-gen/internal/lttng"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "lttng-gen.yaml"

// Config represents the top-level configuration structure parsed from lttng-gen.yaml.
// Command-line flags override the values read from the file.
type Config struct {
	// Gen contains settings for code generation.
	Gen GenConfig `yaml:"gen"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path.
	Path string `yaml:"path"`
}

// GenConfig controls the code generation process.
type GenConfig struct {
	// Manifest is the path of the event manifest (YAML or ETW XML).
	Manifest string `yaml:"manifest"`
	// Intermediate is the directory the lttng/ output directory is created in.
	Intermediate string `yaml:"intermediate"`
	// RuntimeFlavor selects the type tables ("CoreCLR" or "Mono").
	RuntimeFlavor string `yaml:"runtime_flavor"`
	// MaxTracepointArgs is the largest parameter count emitted without packing.
	MaxTracepointArgs int `yaml:"max_tracepoint_args"`
	// EmitHelpers also writes lttng/eventprovhelpers.cpp.
	EmitHelpers bool `yaml:"emit_helpers"`
	// SpecialCaseSizes adds or replaces serialized-size overrides,
	// keyed by template and then parameter name.
	SpecialCaseSizes map[string]map[string]string `yaml:"special_case_sizes"`
}

// Load reads and parses a configuration file. It does not apply defaults.
//
// Parameters:
//   - path: The file to read.
//
// Returns:
//   - *Config: The parsed configuration.
//   - error: An error if the file cannot be read or parsed. A missing file
//     yields an error matching fs.ErrNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration for errors, such as an unknown runtime
// flavor or an incomplete special-case size entry.
//
// Parameters:
//   - config: The Config object to validate.
//
// Returns:
//   - error: An error if the configuration is invalid, or nil otherwise.
func Validate(config *Config) error {
	if _, err := lttng.ParseFlavor(config.Gen.RuntimeFlavor); err != nil {
		return err
	}

	if config.Gen.MaxTracepointArgs < 1 {
		return fmt.Errorf("invalid max_tracepoint_args: %d (must be at least 1)", config.Gen.MaxTracepointArgs)
	}

	for tmpl, params := range config.Gen.SpecialCaseSizes {
		if strings.TrimSpace(tmpl) == "" {
			return fmt.Errorf("special_case_sizes: empty template name")
		}
		if len(params) == 0 {
			return fmt.Errorf("special_case_sizes: template '%s' has no entries", tmpl)
		}
		for param, expr := range params {
			if strings.TrimSpace(param) == "" {
				return fmt.Errorf("special_case_sizes: template '%s' has an empty parameter name", tmpl)
			}
			if strings.TrimSpace(expr) == "" {
				return fmt.Errorf("special_case_sizes: template '%s' parameter '%s' has an empty size expression", tmpl, param)
			}
		}
	}

	if config.Logging.Level != "" {
		switch strings.ToLower(config.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
		}
	}

	return nil
}

// ApplyDefaults sets default values for configuration fields that are missing.
//
// Parameters:
//   - config: The Config object to modify.
func ApplyDefaults(config *Config) {
	if config.Gen.RuntimeFlavor == "" {
		config.Gen.RuntimeFlavor = lttng.CoreCLR.String()
	}
	if config.Gen.MaxTracepointArgs == 0 {
		config.Gen.MaxTracepointArgs = lttng.DefaultMaxArgs
	}
	if config.Gen.Intermediate == "" {
		config.Gen.Intermediate = "."
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
}

// LttngOptions converts the generation settings into rendering options.
// The configured special-case sizes are merged over the built-in ones.
func (c *Config) LttngOptions() (lttng.Options, error) {
	flavor, err := lttng.ParseFlavor(c.Gen.RuntimeFlavor)
	if err != nil {
		return lttng.Options{}, err
	}
	return lttng.Options{
		Flavor:       flavor,
		MaxArgs:      c.Gen.MaxTracepointArgs,
		SpecialSizes: lttng.DefaultSpecialSizes().Merge(c.Gen.SpecialCaseSizes),
	}, nil
}
