// Package content reads the page assets and HTML fragments served by the sector.
package content

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound is returned for missing files and names outside the fixed table.
	ErrNotFound = errors.New("content not found")
	// ErrRead is returned when a file exists but cannot be read.
	ErrRead = errors.New("content read error")
)

// Asset names
const (
	IndexPage  = "index.html"
	StyleSheet = "style.css"
	Script     = "script.js"
)

// Fragment names
const (
	HelpFragment     = "templates/help.html"
	UnlockedFragment = "templates/unlocked.html"
)

var contentTypes = map[string]string{
	IndexPage:  "text/html; charset=utf-8",
	StyleSheet: "text/css; charset=utf-8",
	Script:     "application/javascript",
}

var fragments = map[string]struct{}{
	HelpFragment:     {},
	UnlockedFragment: {},
}

// Asset is a static file with its declared content type.
type Asset struct {
	Name        string
	ContentType string
	Body        []byte
}

// Loader reads assets from a filesystem on every call.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Asset returns one of the fixed static assets.
func (l *Loader) Asset(name string) (*Asset, error) {
	contentType, ok := contentTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	body, err := l.read(name)
	if err != nil {
		return nil, err
	}
	return &Asset{Name: name, ContentType: contentType, Body: body}, nil
}

// Fragment returns the raw text of an HTML fragment.
func (l *Loader) Fragment(name string) (string, error) {
	if _, ok := fragments[name]; !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	body, err := l.read(name)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (l *Loader) read(name string) ([]byte, error) {
	body, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, name, err)
	}
	return body, nil
}
