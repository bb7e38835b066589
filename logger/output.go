package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Final status line and errors
//	1 (-v)      - + Each generated file, run timing
//	2 (-vv)     - + Per-document parse detail, error stack traces
//	3 (-vvv)    - + Full model dump after parsing

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputErrors     OutputCategory = iota // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputGeneratedFiles // One line per staged or published file
	OutputTiming         // Per-state timing

	// Level 2 (-vv) - Detailed
	OutputParseDetail // Each definition document as it is parsed
	OutputStackTraces // %+v error rendering

	// Level 3 (-vvv) - Full dump
	OutputModelDump // Every interface, message and type in the model
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputGeneratedFiles: VerbosityInfo,
	OutputTiming:         VerbosityInfo,

	OutputParseDetail: VerbosityDebug,
	OutputStackTraces: VerbosityDebug,

	OutputModelDump: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputErrors:         "errors",
	OutputUserStatus:     "status",
	OutputGeneratedFiles: "generated-files",
	OutputTiming:         "timing",
	OutputParseDetail:    "parse-detail",
	OutputStackTraces:    "stack-traces",
	OutputModelDump:      "model-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
