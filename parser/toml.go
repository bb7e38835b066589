package parser

import (
	"github.com/BurntSushi/toml"

	"github.com/teranos/a2ml/plugin"
)

// TOMLName is the name of the TOML definition parser.
const TOMLName = "toml"

// NewTOML returns a parser for definitions written in TOML, with messages and
// types as arrays of tables:
//
//	topic = "Alexa.Speaker"
//	namespace = "aasb.alexa.speaker"
//	path = "Alexa/Speaker"
//
//	[[messages]]
//	action = "SetVolume"
//	direction = "incoming"
//	payload = [{ name = "volume", type = "int" }]
func NewTOML() Parser {
	return New(plugin.Metadata{
		Name:        TOMLName,
		Version:     "1.0.0",
		Description: "A2ML interface definitions (TOML)",
	}, []string{"toml"}, decodeTOML)
}

func decodeTOML(data []byte) (map[string]any, error) {
	var tree map[string]any
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
