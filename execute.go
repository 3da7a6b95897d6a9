package main

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// subjectArgs select quiet mode and a program read from stdin.
var subjectArgs = []string{"-q", "-"}

// waitDelay bounds how long output is drained after a timed out subject is
// killed, in case it left children holding the pipe. Untimed runs read
// until every writer has closed the pipe.
const waitDelay = 2 * time.Second

// ExecutionResult is what one subject run produced.
type ExecutionResult struct {
	Output   []byte // stdout and stderr, in write order
	ExitCode int    // -1 if the process was killed by a signal
	TimedOut bool
}

// Subject runs the executable under test.
type Subject struct {
	argv    []string
	timeout time.Duration
}

// NewSubject builds a subject from a shell-quoted command line. A zero
// timeout waits for the subject indefinitely.
func NewSubject(cmdline string, timeout time.Duration) (*Subject, error) {
	words, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing subject command %q", cmdline)
	}
	if len(words) == 0 {
		return nil, errors.New("empty subject command")
	}
	return &Subject{
		argv:    append(words, subjectArgs...),
		timeout: timeout,
	}, nil
}

// String returns the command line the subject is invoked with.
func (s *Subject) String() string {
	return shellquote.Join(s.argv...)
}

// Run feeds source to a fresh subject process and waits for it to exit.
// Exit status does not make Run fail; only a subject that cannot be started
// or a cancelled ctx does.
func (s *Subject) Run(ctx context.Context, source string) (*ExecutionResult, error) {
	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(runCtx, s.argv[0], s.argv[1:]...)
	cmd.Stdin = strings.NewReader(source)
	// A single writer for both streams makes exec share one pipe.
	cmd.Stdout = &out
	cmd.Stderr = &out
	if s.timeout > 0 {
		cmd.WaitDelay = waitDelay
	}

	log.Debugf("running %s", s)
	err := cmd.Run()

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "running subject")
	}

	res := &ExecutionResult{
		Output:   out.Bytes(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case runCtx.Err() == context.DeadlineExceeded:
		res.TimedOut = true
	case errors.As(err, &exitErr):
	case s.timeout > 0 && errors.Is(err, exec.ErrWaitDelay):
		log.Warnf("subject left its output open; stopped reading %s after it exited", waitDelay)
	default:
		return nil, errors.Wrapf(err, "running subject %s", s.argv[0])
	}

	log.WithFields(log.Fields{
		"exit":     res.ExitCode,
		"bytes":    len(res.Output),
		"timedOut": res.TimedOut,
	}).Debug("subject finished")
	return res, nil
}
