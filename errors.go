package main

import (
	"errors"
	"strings"
)

// errKind classifies generation failures so the orchestrator and the CLI can
// report them consistently.
type errKind string

const (
	kindConfig     errKind = "config"     // missing or broken section/site configuration
	kindContent    errKind = "content"    // unreadable item data
	kindRender     errKind = "render"     // missing template, missing key, exec failure
	kindFileSystem errKind = "filesystem" // writes, copies, cleanup
	kindUsage      errKind = "usage"      // bad command line
)

type genError struct {
	kind    errKind
	section string
	path    string
	err     error
}

func (e *genError) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.kind))
	b.WriteString("] ")
	if e.section != "" {
		b.WriteString(e.section)
		b.WriteString(": ")
	}
	if e.path != "" {
		b.WriteString(e.path)
		b.WriteString(": ")
	}
	if e.err != nil {
		b.WriteString(e.err.Error())
	}
	return b.String()
}

func (e *genError) Unwrap() error { return e.err }

func configError(section, path string, err error) error {
	return &genError{kind: kindConfig, section: section, path: path, err: err}
}

func contentError(section, path string, err error) error {
	return &genError{kind: kindContent, section: section, path: path, err: err}
}

func renderError(template string, err error) error {
	return &genError{kind: kindRender, path: template, err: err}
}

func fsError(path string, err error) error {
	return &genError{kind: kindFileSystem, path: path, err: err}
}

func usageError(msg string) error {
	return &genError{kind: kindUsage, err: errors.New(msg)}
}

// kindOf returns the kind of the first genError in err's chain, or "" if
// there is none.
func kindOf(err error) errKind {
	var ge *genError
	if errors.As(err, &ge) {
		return ge.kind
	}
	return ""
}
