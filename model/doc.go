// Package model is the typed semantic model of a2ml interface definitions.
//
// A Model owns Interfaces keyed by "topic:version"; an Interface owns its Messages
// and Types; Messages and Types own their Values. Values keep a plain back reference
// to their owner (see Owner) so resolution can find the enclosing namespace without
// any ambient state.
//
// The model is write-once: it is populated during parsing through the Add* methods
// and only read afterwards. Every accessor that returns a collection returns it in a
// deterministic (sorted) order so generators never depend on map iteration.
//
// Symbols are namespace-qualified names, "{namespace}.{name}". Lookups accept either a
// bare name, which is qualified with the interface namespace, or a full symbol.
package model
