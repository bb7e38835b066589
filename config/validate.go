package config

import "github.com/teranos/a2ml/errors"

// Validate checks the shape of the settings. Whether backends exist and paths
// are usable is decided when a run is configured.
func (s *Settings) Validate() error {
	if s.Parser == "" {
		return errors.New("parser cannot be empty")
	}
	if s.Generator == "" {
		return errors.New("generator cannot be empty")
	}
	for i, in := range s.Inputs {
		if in == "" {
			return errors.Newf("inputs[%d] cannot be empty", i)
		}
	}
	for i, dep := range s.Dependencies {
		if dep == "" {
			return errors.Newf("dependencies[%d] cannot be empty", i)
		}
	}
	if s.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", s.Watch.DebounceMS)
	}
	return nil
}
