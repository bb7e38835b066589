package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the process-wide logger. It is a no-op until Initialize runs,
	// so library packages can log unconditionally.
	Logger = zap.NewNop().Sugar()

	// JSONOutput reports whether the last Initialize selected JSON encoding.
	JSONOutput bool

	// Verbosity is the -v count the logger was initialized with.
	Verbosity int

	sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
)

// Initialize sets up the global logger for the given verbosity and output format.
// Logs go to stderr so command results on stdout stay clean.
func Initialize(verbosity int, jsonOutput bool) error {
	JSONOutput = jsonOutput
	Verbosity = verbosity

	core := zapcore.NewCore(newEncoder(jsonOutput), sink, VerbosityToLevel(verbosity))
	opts := []zap.Option{zap.ErrorOutput(sink)}
	if verbosity >= VerbosityDebug {
		opts = append(opts, zap.AddCaller())
	}
	Logger = zap.New(core, opts...).Sugar()
	return nil
}

func newEncoder(jsonOutput bool) zapcore.Encoder {
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// SetOutput redirects log output to w until the returned func is called.
// The logger must be re-initialized for the change to take effect.
func SetOutput(w io.Writer) (restore func()) {
	prev := sink
	sink = zapcore.Lock(zapcore.AddSync(w))
	return func() { sink = prev }
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	_ = Logger.Sync()
}

// Infow logs an info message with structured fields.
func Infow(msg string, keysAndValues ...interface{}) {
	Logger.Infow(msg, keysAndValues...)
}

// Warnw logs a warning message with structured fields.
func Warnw(msg string, keysAndValues ...interface{}) {
	Logger.Warnw(msg, keysAndValues...)
}

// Errorw logs an error message with structured fields.
func Errorw(msg string, keysAndValues ...interface{}) {
	Logger.Errorw(msg, keysAndValues...)
}

// Debugw logs a debug message with structured fields.
func Debugw(msg string, keysAndValues ...interface{}) {
	Logger.Debugw(msg, keysAndValues...)
}
