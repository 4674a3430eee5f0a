// Package challenge grades the five trivia prompts of the sector.
package challenge

import (
	"strings"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/auth"
)

// Type labels a challenge.
type Type string

const (
	TypeUsername Type = "username"
	TypePassword Type = "password"
	TypeRiddle   Type = "riddle"
	TypeCrab     Type = "crab"
	TypeFinal    Type = "final"
)

// Types lists every challenge in play order.
var Types = []Type{TypeUsername, TypePassword, TypeRiddle, TypeCrab, TypeFinal}

// answers holds the accepted normalized values per single-value challenge.
var answers = map[Type]map[string]struct{}{
	TypeUsername: set("github"),
	TypePassword: set("1550"),
	TypeRiddle:   set("internet", "web", "the internet", "the web"),
	TypeCrab:     set("summerofmaking"),
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

// Submission is one answer attempt. Final uses Username and Password; every
// other type uses Value.
type Submission struct {
	Type     string
	Value    string
	Username string
	Password string
}

// Normalize trims and lowercases a submitted value.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Known reports whether t is one of the five challenge types.
func Known(t string) bool {
	typ := Type(strings.TrimSpace(t))
	if typ == TypeFinal {
		return true
	}
	_, ok := answers[typ]
	return ok
}

// Grade reports whether s answers its challenge. Unknown types are incorrect.
func Grade(s Submission) bool {
	typ := Type(strings.TrimSpace(s.Type))

	if typ == TypeFinal {
		return auth.Default.Match(s.Username, s.Password)
	}

	accepted, ok := answers[typ]
	if !ok {
		return false
	}
	_, ok = accepted[Normalize(s.Value)]
	return ok
}
