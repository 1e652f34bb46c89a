package domain

import "strings"

// Verb identifies the handler selected by the first token of a command line.
type Verb string

const (
	VerbPing     Verb = "ping"
	VerbCommands Verb = "commands"
	VerbHelp     Verb = "help"
	VerbRequest  Verb = "request"
	VerbList     Verb = "list"
	VerbDelete   Verb = "delete"
	VerbPopular  Verb = "popular"
	VerbUnknown  Verb = "unknown"
)

// KnownVerbs lists the routable verbs in match priority order.
var KnownVerbs = []Verb{
	VerbPing,
	VerbCommands,
	VerbHelp,
	VerbRequest,
	VerbList,
	VerbDelete,
	VerbPopular,
}

func (v Verb) String() string {
	return string(v)
}

func (v Verb) IsValid() bool {
	if v == VerbUnknown {
		return true
	}
	for _, known := range KnownVerbs {
		if v == known {
			return true
		}
	}
	return false
}

// ParseVerb matches token against KnownVerbs with starts-with semantics, so
// "pingpong" routes to ping. The first match wins.
func ParseVerb(token string) Verb {
	token = strings.ToLower(token)
	if token == "" {
		return VerbUnknown
	}
	for _, verb := range KnownVerbs {
		if strings.HasPrefix(token, string(verb)) {
			return verb
		}
	}
	return VerbUnknown
}
