package model

import "strings"

// Qualify returns "namespace.name", or name unchanged when it is already qualified.
func Qualify(namespace, name string) string {
	if strings.Contains(name, ".") || namespace == "" {
		return name
	}
	return namespace + "." + name
}

// SplitSymbol splits a possibly qualified reference at its last dot.
// "aasb.alexa.speaker.Volume" -> ("aasb.alexa.speaker", "Volume"); "Volume" -> ("", "Volume").
func SplitSymbol(symbol string) (namespace, name string) {
	idx := strings.LastIndex(symbol, ".")
	if idx < 0 {
		return "", symbol
	}
	return symbol[:idx], symbol[idx+1:]
}
