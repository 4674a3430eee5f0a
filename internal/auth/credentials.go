// Package auth checks visitor credentials against the compiled-in pair.
package auth

import (
	"crypto/subtle"
	"strings"
)

// Realm is announced in WWW-Authenticate challenges.
const Realm = "Forbidden Sector 65"

// Credentials is a username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Default is the only pair that opens the sector.
var Default = Credentials{Username: "github", Password: "1550"}

// Match reports whether the submitted pair equals c. Both values are trimmed;
// the username compares case-insensitively, the password exactly.
func (c Credentials) Match(username, password string) bool {
	user := strings.ToLower(strings.TrimSpace(username))
	pass := strings.TrimSpace(password)

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(strings.ToLower(c.Username)))
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(c.Password))
	return userOK&passOK == 1
}

// Challenge returns the WWW-Authenticate header value for Basic auth.
func Challenge() string {
	return `Basic realm="` + Realm + `"`
}
