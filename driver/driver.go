// Package driver runs one compiler invocation as a state machine:
//
//	Configuring -> Parsing -> Generating -> Publishing -> Done
//
// with any state able to fail. A run owns one Model and one staging directory.
// Generators only ever write into staging; the output directory is touched
// during Publishing, after everything else succeeded.
package driver

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
	"github.com/teranos/a2ml/model"
	"github.com/teranos/a2ml/parser"
	"github.com/teranos/a2ml/plugin"
	"github.com/teranos/a2ml/typegen"
)

// versionPattern is the accepted shape of a message version.
var versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?(-.+)?$`)

// Config is everything a run needs, as collected from flags and the config file.
type Config struct {
	Parser         string
	Generator      string
	Inputs         []string
	Dependencies   []string
	MessageVersion string
	Output         string
	NoOutput       bool
}

// Result describes a finished run.
type Result struct {
	RunID      string
	State      State
	Model      *model.Model
	Stats      model.Stats
	Files      []string // staged files, relative to the staging directory
	Published  []string // files copied to the output directory
	Elapsed    time.Duration
	StateTimes map[State]time.Duration
	Staging    string // removed when the run ends
}

// Driver runs compiler invocations against a set of registered backends.
type Driver struct {
	parsers    *plugin.Registry[parser.Parser]
	generators *plugin.Registry[typegen.Generator]
	observers  []func(State)
	log        *zap.SugaredLogger
}

// Option configures a Driver.
type Option func(*Driver)

// WithParsers replaces the built-in parser registry.
func WithParsers(r *plugin.Registry[parser.Parser]) Option {
	return func(d *Driver) { d.parsers = r }
}

// WithGenerators replaces the built-in generator registry.
func WithGenerators(r *plugin.Registry[typegen.Generator]) Option {
	return func(d *Driver) { d.generators = r }
}

// WithObserver registers fn to be called on every state transition.
func WithObserver(fn func(State)) Option {
	return func(d *Driver) { d.observers = append(d.observers, fn) }
}

// New creates a Driver with the built-in backends.
func New(opts ...Option) *Driver {
	d := &Driver{
		parsers:    Parsers(),
		generators: Generators(),
		log:        logger.ComponentLogger("driver"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ParserRegistry returns the parsers this driver resolves names against.
func (d *Driver) ParserRegistry() *plugin.Registry[parser.Parser] { return d.parsers }

// GeneratorRegistry returns the generators this driver resolves names against.
func (d *Driver) GeneratorRegistry() *plugin.Registry[typegen.Generator] { return d.generators }

// Run executes one full pipeline. On failure the returned Result has State
// Failed and nothing has been published.
func (d *Driver) Run(ctx context.Context, cfg Config) (*Result, error) {
	return d.run(ctx, cfg, nil)
}

// Check generates into staging and compares the staged tree with existing,
// publishing nothing.
func (d *Driver) Check(ctx context.Context, cfg Config, existing string) (*typegen.CheckResult, *Result, error) {
	cfg.NoOutput = true
	var check *typegen.CheckResult
	res, err := d.run(ctx, cfg, func(staging string) error {
		var err error
		check, err = typegen.CompareDirectories(staging, existing)
		return err
	})
	if err != nil {
		return nil, res, err
	}
	return check, res, nil
}

// run is the state machine. inspect, when set, sees the staging directory
// after generation and before it is published or discarded.
func (d *Driver) run(ctx context.Context, cfg Config, inspect func(staging string) error) (*Result, error) {
	start := time.Now()
	r := &run{
		driver: d,
		cfg:    cfg,
		result: &Result{
			RunID:      uuid.New().String(),
			StateTimes: make(map[State]time.Duration),
		},
	}
	r.log = logger.ChildLogger(d.log, logger.FieldRunID, r.result.RunID)
	defer r.cleanup()

	steps := []struct {
		state State
		fn    func(context.Context) error
	}{
		{Configuring, r.configure},
		{Parsing, r.parse},
		{Generating, r.generate},
		{Publishing, r.publish},
	}

	for _, step := range steps {
		if step.state == Publishing && inspect != nil {
			if err := inspect(r.staging); err != nil {
				return r.fail(start, err)
			}
		}

		r.transition(step.state)
		stepStart := time.Now()
		if err := step.fn(ctx); err != nil {
			return r.fail(start, err)
		}
		r.result.StateTimes[step.state] = time.Since(stepStart)
	}

	r.result.Elapsed = time.Since(start)
	r.transition(Done)
	r.log.Infow("Run complete",
		logger.FieldCount, len(r.result.Files),
		logger.FieldDurationMS, r.result.Elapsed.Milliseconds(),
	)
	return r.result, nil
}

// run holds the state of one invocation.
type run struct {
	driver *Driver
	cfg    Config
	result *Result
	log    *zap.SugaredLogger

	parser    parser.Parser
	generator typegen.Generator
	deps      []*Source
	inputs    []*Source
	staging   string
	model     *model.Model
}

func (r *run) transition(s State) {
	r.result.State = s
	r.log.Debugw("State transition", logger.FieldState, s.String())
	for _, fn := range r.driver.observers {
		fn(s)
	}
}

func (r *run) fail(start time.Time, err error) (*Result, error) {
	failedIn := r.result.State
	r.result.Elapsed = time.Since(start)
	r.transition(Failed)
	r.log.Debugw("Run failed",
		"failed_in", failedIn.String(),
		logger.FieldErrorKind, string(errors.KindOf(err)),
		logger.FieldError, err,
	)
	return r.result, err
}

func (r *run) cleanup() {
	if r.staging != "" {
		if err := os.RemoveAll(r.staging); err != nil {
			r.log.Warnw("Failed to remove staging directory", logger.FieldDir, r.staging, logger.FieldError, err)
		}
	}
	for _, s := range append(r.deps, r.inputs...) {
		s.Cleanup()
	}
}

func (r *run) configure(ctx context.Context) error {
	cfg := r.cfg

	if len(cfg.Inputs) == 0 {
		return errors.NewKind(errors.InvalidInput, "at least one input directory is required")
	}
	for _, dep := range cfg.Dependencies {
		s, err := ResolveSource(ctx, dep, r.log)
		if err != nil {
			return err
		}
		r.deps = append(r.deps, s)
	}
	for _, in := range cfg.Inputs {
		s, err := ResolveSource(ctx, in, r.log)
		if err != nil {
			return err
		}
		r.inputs = append(r.inputs, s)
	}

	var err error
	if r.parser, err = r.driver.parsers.Lookup(cfg.Parser); err != nil {
		return err
	}
	if r.generator, err = r.driver.generators.Lookup(cfg.Generator); err != nil {
		return err
	}

	if !versionPattern.MatchString(cfg.MessageVersion) {
		err := errors.NewKind(errors.InvalidVersion, "invalid message version %q", cfg.MessageVersion)
		return errors.WithHint(err, "expected MAJOR.MINOR, MAJOR.MINOR.PATCH or either with a -suffix, e.g. 4.0")
	}
	if err := r.driver.parsers.CheckVersion(cfg.Parser, cfg.MessageVersion); err != nil {
		return err
	}
	if err := r.driver.generators.CheckVersion(cfg.Generator, cfg.MessageVersion); err != nil {
		return err
	}

	if !cfg.NoOutput {
		if err := checkOutput(cfg.Output); err != nil {
			return err
		}
	}

	if r.staging, err = os.MkdirTemp("", "a2ml-"+r.result.RunID+"-"); err != nil {
		return errors.Wrap(err, "failed to create staging directory")
	}
	r.result.Staging = r.staging

	r.log.Debugw("Configured",
		logger.FieldParser, cfg.Parser,
		logger.FieldGenerator, cfg.Generator,
		logger.FieldVersion, cfg.MessageVersion,
		logger.FieldDir, r.staging,
	)
	return nil
}

func checkOutput(output string) error {
	if output == "" {
		err := errors.NewKind(errors.InvalidOutput, "an output directory is required")
		return errors.WithHint(err, "pass --output DIR or --no-output")
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return errors.WrapKind(err, errors.InvalidOutput, "invalid output path %s", output)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return errors.NewKind(errors.InvalidOutput, "output path is not a directory: %s", output)
	}
	parent := filepath.Dir(abs)
	info, err := os.Stat(parent)
	if err != nil || !info.IsDir() {
		return errors.NewKind(errors.InvalidOutput, "parent directory of output does not exist: %s", parent)
	}
	return nil
}

func (r *run) parse(context.Context) error {
	r.model = model.New(r.cfg.MessageVersion)

	for _, s := range r.deps {
		if err := r.parser.Parse(s.Dir, false, r.model); err != nil {
			return err
		}
	}
	for _, s := range r.inputs {
		if err := r.parser.Parse(s.Dir, true, r.model); err != nil {
			return err
		}
	}

	r.result.Model = r.model
	r.result.Stats = r.model.Stats()
	r.log.Debugw("Parsed model",
		"interfaces", r.result.Stats.Interfaces,
		"exported", r.result.Stats.Exported,
		"messages", r.result.Stats.Messages,
		"types", r.result.Stats.Types,
	)
	return nil
}

func (r *run) generate(context.Context) error {
	files, err := r.generator.Generate(r.model, r.staging)
	if err != nil {
		return err
	}
	r.result.Files = files
	return nil
}

func (r *run) publish(context.Context) error {
	if r.cfg.NoOutput {
		r.log.Debugw("Output disabled, discarding staging", logger.FieldDir, r.staging)
		return nil
	}
	published, err := Publish(r.staging, r.cfg.Output)
	r.result.Published = published
	return err
}

// Model configures and parses like Run but stops before generating.
func (d *Driver) Model(ctx context.Context, cfg Config) (*model.Model, error) {
	cfg.NoOutput = true
	r := &run{
		driver: d,
		cfg:    cfg,
		result: &Result{RunID: uuid.New().String(), StateTimes: make(map[State]time.Duration)},
	}
	r.log = logger.ChildLogger(d.log, logger.FieldRunID, r.result.RunID)
	defer r.cleanup()

	if cfg.Generator == "" {
		r.cfg.Generator = DefaultGenerator
	}
	if err := r.configure(ctx); err != nil {
		return nil, err
	}
	if err := r.parse(ctx); err != nil {
		return nil, err
	}
	return r.model, nil
}
