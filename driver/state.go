package driver

// State is a step of a compiler run.
type State int

const (
	Configuring State = iota
	Parsing
	Generating
	Publishing
	Done
	Failed
)

var stateNames = map[State]string{
	Configuring: "configuring",
	Parsing:     "parsing",
	Generating:  "generating",
	Publishing:  "publishing",
	Done:        "done",
	Failed:      "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the run has finished in this state.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
