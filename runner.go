package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Summary tallies a run.
type Summary struct {
	Passed  int
	Failed  int
	Missing int // path arguments that did not exist
}

// OK reports whether the run should exit successfully.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Missing == 0
}

func (s Summary) add(o Outcome) Summary {
	if o.Passed {
		s.Passed++
	} else {
		s.Failed++
	}
	return s
}

// Runner drives fixtures through the subject one at a time.
type Runner struct {
	subject   *Subject
	report    *Reporter
	keepGoing bool // malformed fixtures fail instead of aborting the run
}

func NewRunner(subject *Subject, report *Reporter, keepGoing bool) *Runner {
	return &Runner{subject: subject, report: report, keepGoing: keepGoing}
}

// Run processes every fixture under paths in order. The returned error is
// set only when the run was aborted; test failures are in the Summary.
func (r *Runner) Run(ctx context.Context, paths []string) (Summary, error) {
	var sum Summary
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			log.WithError(err).Debugf("cannot use %s", path)
			r.report.Missing(path)
			sum.Missing++
			continue
		}
		for fixture, err := range fixtures(path) {
			if err != nil {
				return sum, err
			}
			o, err := r.runFixture(ctx, fixture)
			if err != nil {
				return sum, err
			}
			r.report.Report(o)
			sum = sum.add(o)
		}
	}
	r.report.Summary(sum)
	return sum, nil
}

func (r *Runner) runFixture(ctx context.Context, path string) (Outcome, error) {
	log.WithField("fixture", path).Debug("running fixture")

	f, err := readFixture(path)
	if err != nil {
		var malformed *MalformedFixtureError
		if r.keepGoing && errors.As(err, &malformed) {
			return Outcome{Path: path, Note: malformed.Error()}, nil
		}
		return Outcome{}, err
	}

	res, err := r.subject.Run(ctx, f.Source)
	if err != nil {
		return Outcome{}, err
	}

	o := compare(f, res)
	if res.TimedOut {
		o.Note = fmt.Sprintf("timed out after %s", r.subject.timeout)
	}
	return o, nil
}
