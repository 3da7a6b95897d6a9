package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/kylelemons/godebug/diff"
)

// Outcome is the verdict on one fixture.
type Outcome struct {
	Path   string
	Passed bool
	Result *ExecutionResult // nil if the subject never ran
	Diff   []string         // display lines, expected vs actual
	Note   string           // why the fixture failed, beyond the diff
}

// compare checks res against the fixture's expected output, byte for byte.
func compare(f *Fixture, res *ExecutionResult) Outcome {
	o := Outcome{Path: f.Path, Result: res}
	actual := string(res.Output)
	if actual == f.Expected && !res.TimedOut {
		o.Passed = true
		return o
	}
	if actual != f.Expected {
		o.Diff = lineDiff(f.Expected, actual)
	}
	return o
}

const noEOL = `\ No newline at end of output`

// lineDiff lists the lines of want and got, prefixed "- " when only in
// want, "+ " when only in got and "  " when common to both. Line
// terminators take part in the comparison.
func lineDiff(want, got string) []string {
	var lines []string
	add := func(prefix, line string) {
		text, ok := strings.CutSuffix(line, "\n")
		lines = append(lines, prefix+text)
		if !ok {
			lines = append(lines, noEOL)
		}
	}
	for _, c := range diff.DiffChunks(splitLines(want), splitLines(got)) {
		for _, line := range c.Deleted {
			add("- ", line)
		}
		for _, line := range c.Added {
			add("+ ", line)
		}
		for _, line := range c.Equal {
			add("  ", line)
		}
	}
	return lines
}

// splitLines splits s after each newline, keeping the terminators.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Reporter writes the human readable account of a run.
type Reporter struct {
	w          io.Writer
	format     Formatter
	showOutput bool
}

func NewReporter(w io.Writer, format Formatter, showOutput bool) *Reporter {
	return &Reporter{w: w, format: format, showOutput: showOutput}
}

// Missing reports a path argument that does not exist.
func (r *Reporter) Missing(path string) {
	fmt.Fprintf(r.w, "File or directory does not exist: %s\n", path)
}

// Report prints the verdict line for o, then the note and diff of a
// failure, then the actual output if requested.
func (r *Reporter) Report(o Outcome) {
	if o.Passed {
		fmt.Fprintf(r.w, "%s ... %s\n", o.Path, r.format.Pass("OK"))
	} else {
		fmt.Fprintf(r.w, "%s ... %s\n", o.Path, r.format.Fail("FAIL"))
		if o.Note != "" {
			fmt.Fprintf(r.w, "\t%s\n", o.Note)
		}
		for _, line := range o.Diff {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
	}
	if r.showOutput && o.Result != nil {
		out := o.Result.Output
		r.w.Write(out)
		// Keep the next verdict line at the start of a line.
		if len(out) > 0 && out[len(out)-1] != '\n' {
			fmt.Fprintln(r.w)
		}
	}
}

// Summary prints the closing tally. Runs that found nothing print nothing.
func (r *Reporter) Summary(s Summary) {
	if s.Passed+s.Failed+s.Missing == 0 {
		return
	}
	fmt.Fprintf(r.w, "passed %d, failed %d", s.Passed, s.Failed)
	if s.Missing > 0 {
		fmt.Fprintf(r.w, ", missing %d", s.Missing)
	}
	fmt.Fprintln(r.w)
}
