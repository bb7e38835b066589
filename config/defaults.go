package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/a2ml/driver"
)

// DefaultWatchDebounceMS is the default quiet period of `a2ml watch`.
const DefaultWatchDebounceMS = 300

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyParser, driver.DefaultParser)
	v.SetDefault(KeyGenerator, driver.DefaultGenerator)
	v.SetDefault(KeyNoOutput, false)
	v.SetDefault(KeyJSONLogs, false)
	v.SetDefault(KeyWatchDebounce, DefaultWatchDebounceMS)
}

// Defaults returns the settings used when nothing is configured.
func Defaults() *Settings {
	return &Settings{
		Parser:    driver.DefaultParser,
		Generator: driver.DefaultGenerator,
		Watch:     WatchSettings{DebounceMS: DefaultWatchDebounceMS},
	}
}
