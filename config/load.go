package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
)

// NewViper creates a Viper instance with defaults and A2ML_* environment binding.
// Flags bound afterwards take precedence over both.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range allKeys {
		// Unmarshal only sees environment values of keys viper knows about
		_ = v.BindEnv(key)
	}
	SetDefaults(v)
	return v
}

// Load reads settings into v from configPath, or from the nearest a2ml.toml found
// by walking up from the working directory when configPath is empty. A missing
// project file is not an error. The returned path is the file used, if any.
func Load(v *viper.Viper, configPath string) (string, error) {
	if configPath == "" {
		configPath = FindProjectConfig()
		if configPath == "" {
			return "", nil
		}
	}

	if err := mergeConfigFile(v, configPath); err != nil {
		return "", err
	}
	logger.Debugw("Loaded configuration", logger.FieldFile, configPath)
	return configPath, nil
}

// Decode unmarshals the merged configuration.
func Decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &s, nil
}

// LoadFile reads a single configuration file on top of the defaults, ignoring
// the environment.
func LoadFile(configPath string) (*Settings, error) {
	v := viper.New()
	SetDefaults(v)
	if err := mergeConfigFile(v, configPath); err != nil {
		return nil, err
	}
	return Decode(v)
}

// FindProjectConfig searches for a2ml.toml by walking up the directory tree from
// the working directory. Returns "" when none is found.
func FindProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(dir)
}

func findConfigFrom(dir string) string {
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// mergeConfigFile merges a TOML file into v at config-file precedence. Relative
// paths in the file are taken relative to the file's directory.
func mergeConfigFile(v *viper.Viper, configPath string) error {
	fileViper := viper.New()
	fileViper.SetConfigFile(configPath)
	fileViper.SetConfigType("toml")

	if err := fileViper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	settings := fileViper.AllSettings()
	base := filepath.Dir(configPath)
	for _, key := range pathKeys {
		if raw, ok := settings[key]; ok {
			settings[key] = resolvePaths(base, raw)
		}
	}

	if err := v.MergeConfigMap(settings); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", configPath)
	}
	return nil
}

// resolvePaths joins relative local paths onto base. Remote sources and
// absolute or home-relative paths are kept as written.
func resolvePaths(base string, raw any) any {
	switch x := raw.(type) {
	case string:
		return resolvePath(base, x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			if s, ok := item.(string); ok {
				out[i] = resolvePath(base, s)
			} else {
				out[i] = item
			}
		}
		return out
	case []string:
		out := make([]string, len(x))
		for i, s := range x {
			out[i] = resolvePath(base, s)
		}
		return out
	default:
		return raw
	}
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) || strings.HasPrefix(path, "~") || strings.Contains(path, "::") || strings.Contains(path, "://") {
		return path
	}
	return filepath.Join(base, path)
}
