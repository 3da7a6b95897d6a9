package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// fixtureExt is the suffix that marks a file as a fixture.
const fixtureExt = ".burntest"

// delimiter separates a fixture's source from its expected output.
const delimiter = "\n/* OUTPUTS\n"

var errNoDelimiter = errors.New(`missing "/* OUTPUTS" delimiter`)

// Fixture is one test case: a program and the output it must produce.
type Fixture struct {
	Path     string
	Source   string // fed to the subject on stdin
	Expected string // compared byte for byte with the subject's output
}

// MalformedFixtureError is returned when a fixture file cannot be split.
type MalformedFixtureError struct {
	Path string
	Err  error
}

func (e *MalformedFixtureError) Error() string {
	return fmt.Sprintf("malformed fixture %s: %v", e.Path, e.Err)
}

func (e *MalformedFixtureError) Unwrap() error {
	return e.Err
}

// readFixture loads and splits the fixture at path.
func readFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading fixture")
	}
	return parseFixture(path, string(data))
}

// parseFixture splits content on the first delimiter. Any later occurrence
// belongs to the expected output.
func parseFixture(path, content string) (*Fixture, error) {
	source, expected, ok := strings.Cut(content, delimiter)
	if !ok {
		return nil, &MalformedFixtureError{Path: path, Err: errNoDelimiter}
	}
	return &Fixture{
		Path:     path,
		Source:   source,
		Expected: expected,
	}, nil
}

func isFixture(path string) bool {
	return strings.HasSuffix(path, fixtureExt)
}
