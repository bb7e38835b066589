package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teranos/a2ml/config"
	"github.com/teranos/a2ml/driver"
	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
)

// runFlags maps command-line flags to configuration keys.
var runFlags = map[string]string{
	"parser":          config.KeyParser,
	"generator":       config.KeyGenerator,
	"input":           config.KeyInputs,
	"dependencies":    config.KeyDependencies,
	"message-version": config.KeyMessageVersion,
	"output":          config.KeyOutput,
	"no-output":       config.KeyNoOutput,
}

// addRunFlags adds the flags describing one compiler run.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("parser", "", "Parser backend (default \"a2ml\")")
	f.String("generator", "", "Generator backend (default \"cpp\")")
	f.StringSlice("input", nil, "Input directory or source, repeatable; its interfaces are generated")
	f.StringSlice("dependencies", nil, "Dependency directory or source, repeatable; parsed but not generated")
	f.String("message-version", "", "Message version to target, e.g. 4.0")
	f.StringP("output", "o", "", "Output directory")
	f.Bool("no-output", false, "Generate and validate without publishing")
}

// loadSettings merges a2ml.toml, the environment and the flags of cmd.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	v := config.NewViper()

	configPath, _ := cmd.Flags().GetString("config")
	if _, err := config.Load(v, configPath); err != nil {
		return nil, err
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := runFlags[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return nil, errors.Wrap(bindErr, "failed to bind flags")
	}

	s, err := config.Decode(v)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	if s.JSONLogs && !logger.JSONOutput {
		if err := logger.Initialize(verbosity(cmd), true); err != nil {
			return nil, errors.Wrap(err, "failed to initialize logger")
		}
	}
	return s, nil
}

// driverConfig converts settings into a run configuration.
func driverConfig(s *config.Settings) driver.Config {
	return driver.Config{
		Parser:         s.Parser,
		Generator:      s.Generator,
		Inputs:         s.Inputs,
		Dependencies:   s.Dependencies,
		MessageVersion: s.MessageVersion,
		Output:         s.Output,
		NoOutput:       s.NoOutput,
	}
}
