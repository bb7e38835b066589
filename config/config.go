// Package config loads a2ml project settings from a2ml.toml, A2ML_* environment
// variables and command-line flags, in increasing order of precedence.
package config

// FileName is the project configuration file searched for by Load.
const FileName = "a2ml.toml"

// EnvPrefix prefixes environment overrides: A2ML_MESSAGE_VERSION, A2ML_OUTPUT, ...
const EnvPrefix = "A2ML"

// Settings is the a2ml project configuration
type Settings struct {
	Parser         string        `mapstructure:"parser" toml:"parser"`
	Generator      string        `mapstructure:"generator" toml:"generator"`
	MessageVersion string        `mapstructure:"message_version" toml:"message_version,omitempty"`
	Inputs         []string      `mapstructure:"inputs" toml:"inputs,omitempty"`
	Dependencies   []string      `mapstructure:"dependencies" toml:"dependencies,omitempty"`
	Output         string        `mapstructure:"output" toml:"output,omitempty"`
	NoOutput       bool          `mapstructure:"no_output" toml:"no_output,omitempty"`
	JSONLogs       bool          `mapstructure:"json_logs" toml:"json_logs,omitempty"`
	Watch          WatchSettings `mapstructure:"watch" toml:"watch"`
}

// WatchSettings configures `a2ml watch`
type WatchSettings struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"` // quiet period before a rebuild
}

// Keys of Settings, as used in a2ml.toml and for flag binding.
const (
	KeyParser         = "parser"
	KeyGenerator      = "generator"
	KeyMessageVersion = "message_version"
	KeyInputs         = "inputs"
	KeyDependencies   = "dependencies"
	KeyOutput         = "output"
	KeyNoOutput       = "no_output"
	KeyJSONLogs       = "json_logs"
	KeyWatchDebounce  = "watch.debounce_ms"
)

var allKeys = []string{
	KeyParser, KeyGenerator, KeyMessageVersion, KeyInputs, KeyDependencies,
	KeyOutput, KeyNoOutput, KeyJSONLogs, KeyWatchDebounce,
}

// pathKeys hold filesystem locations, resolved against the config file's directory.
var pathKeys = []string{KeyInputs, KeyDependencies, KeyOutput}
