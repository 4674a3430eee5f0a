package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basic(s string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(s))
}

func TestCredentials_Match(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"exact", "github", "1550", true},
		{"username upper case", "GitHub", "1550", true},
		{"surrounding whitespace", "  github ", " 1550\n", true},
		{"wrong password", "github", "1551", false},
		{"wrong username", "gitlab", "1550", false},
		{"swapped", "1550", "github", false},
		{"empty", "", "", false},
		{"password prefix", "github", "155", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default.Match(tt.username, tt.password))
		})
	}
}

func TestCredentials_MatchPasswordCaseSensitive(t *testing.T) {
	creds := Credentials{Username: "Agent", Password: "Secret"}
	assert.True(t, creds.Match("agent", "Secret"))
	assert.False(t, creds.Match("agent", "secret"))
}

func TestChallenge(t *testing.T) {
	assert.Equal(t, `Basic realm="Forbidden Sector 65"`, Challenge())
}

func TestParseBasic(t *testing.T) {
	user, pass, err := ParseBasic(basic("github:1550"))
	require.NoError(t, err)
	assert.Equal(t, "github", user)
	assert.Equal(t, "1550", pass)
}

func TestParseBasic_SplitsOnFirstColon(t *testing.T) {
	user, pass, err := ParseBasic(basic("github:15:50"))
	require.NoError(t, err)
	assert.Equal(t, "github", user)
	assert.Equal(t, "15:50", pass)
}

func TestParseBasic_EmptyParts(t *testing.T) {
	user, pass, err := ParseBasic(basic(":"))
	require.NoError(t, err)
	assert.Empty(t, user)
	assert.Empty(t, pass)
}

func TestParseBasic_Errors(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing", "", ErrMissingHeader},
		{"no space", "Basicgithub", ErrMalformedHeader},
		{"bearer", "Bearer abc", ErrUnsupportedScheme},
		{"lower case scheme", "basic " + base64.StdEncoding.EncodeToString([]byte("github:1550")), ErrUnsupportedScheme},
		{"bad base64", "Basic !!!not-base64", ErrInvalidBase64},
		{"bad utf8", "Basic " + base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, ':', 'x'}), ErrInvalidUTF8},
		{"no colon", basic("github1550"), ErrMissingColon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseBasic(tt.header)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
