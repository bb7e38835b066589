package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/a2ml/errors"
)

// Save writes settings to path as TOML. An existing file is only replaced when
// force is set, after copying it to path + ".back".
func Save(path string, s *Settings, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			err := errors.Newf("config file already exists: %s", path)
			return errors.WithHint(err, "use --force to overwrite it")
		}
		if err := createBackup(path); err != nil {
			return errors.Wrap(err, "failed to create backup")
		}
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup copies the current file to path + ".back", replacing any older backup
func createBackup(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(path+".back", content, 0644); err != nil {
		return errors.Wrap(err, "failed to write backup")
	}
	return nil
}
