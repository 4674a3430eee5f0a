package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// Basic header parse errors, one per step.
var (
	ErrMissingHeader     = errors.New("authorization header missing")
	ErrMalformedHeader   = errors.New("authorization header has no scheme separator")
	ErrUnsupportedScheme = errors.New("authorization scheme is not Basic")
	ErrInvalidBase64     = errors.New("basic credentials are not valid base64")
	ErrInvalidUTF8       = errors.New("basic credentials are not valid UTF-8")
	ErrMissingColon      = errors.New("basic credentials have no colon")
)

// ParseBasic decodes an `Authorization: Basic <base64(user:pass)>` header value.
// The decoded text is split on its first colon.
func ParseBasic(header string) (username, password string, err error) {
	if header == "" {
		return "", "", ErrMissingHeader
	}

	scheme, encoded, ok := strings.Cut(header, " ")
	if !ok {
		return "", "", ErrMalformedHeader
	}
	if scheme != "Basic" {
		return "", "", ErrUnsupportedScheme
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", ErrInvalidBase64
	}
	if !utf8.Valid(decoded) {
		return "", "", ErrInvalidUTF8
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", ErrMissingColon
	}
	return username, password, nil
}
