package logger

import "go.uber.org/zap/zapcore"

// Verbosity levels, one per -v on the command line. They select output
// categories (see output.go) as well as the log level.
const (
	VerbosityUser  = 0 // summary line and errors
	VerbosityInfo  = 1 // -v: generated files, timing
	VerbosityDebug = 2 // -vv: parse detail, state transitions, stack traces
	VerbosityTrace = 3 // -vvv: model dump
)

// VerbosityToLevel maps a -v count to a zap level: warnings by default,
// info at -v, debug from -vv on.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// LevelName names a verbosity for log fields.
func LevelName(verbosity int) string {
	switch {
	case verbosity <= VerbosityUser:
		return "quiet"
	case verbosity == VerbosityInfo:
		return "info"
	case verbosity == VerbosityDebug:
		return "debug"
	default:
		return "trace"
	}
}
