package main

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Config holds the settings of one harness run.
type Config struct {
	Subject    string        // subject command line, split with shell quoting rules
	Timeout    time.Duration // per-fixture bound on the subject, 0 for none
	ShowOutput bool          // echo actual output after every fixture
	Color      colorMode     // whether PASS/FAIL tokens are colorized
	KeepGoing  bool          // report malformed fixtures as failures instead of aborting
	LogLevel   logLevel      // diagnostic logging level on stderr
}

var DefaultConfig = Config{
	Subject:  "build/bin/burn",
	Color:    colorAuto,
	LogLevel: logLevel(log.WarnLevel),
}

// Environment variables consulted before flags are parsed.
const (
	envSubject = "BURNTEST_SUBJECT"
	envTimeout = "BURNTEST_TIMEOUT"
	envNoColor = "NO_COLOR"
)

// applyEnv overlays environment settings on cfg. getenv is os.Getenv outside tests.
func (cfg *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(envSubject); v != "" {
		cfg.Subject = v
	}
	if v := getenv(envTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, envTimeout)
		}
		cfg.Timeout = d
	}
	if getenv(envNoColor) != "" && cfg.Color == colorAuto {
		cfg.Color = colorNever
	}
	return nil
}

// colorMode selects when the formatter emits ANSI color.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

var _ pflag.Value = (*colorMode)(nil)

func (c *colorMode) String() string { return string(*c) }
func (c *colorMode) Type() string   { return "when" }

func (c *colorMode) Set(s string) error {
	switch m := colorMode(strings.ToLower(s)); m {
	case colorAuto, colorAlways, colorNever:
		*c = m
		return nil
	}
	return errors.New("must be one of auto, always, never")
}

// logLevel adapts a logrus level to a command-line flag.
type logLevel log.Level

var _ pflag.Value = (*logLevel)(nil)

func (l *logLevel) String() string { return log.Level(*l).String() }
func (l *logLevel) Type() string   { return "level" }

func (l *logLevel) Set(s string) error {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return err
	}
	*l = logLevel(lvl)
	return nil
}

// setupLogging points the standard logrus logger at w. The -v and -d
// aliases win over --log-level.
func setupLogging(w io.Writer, level logLevel, verbose, debug bool) {
	switch {
	case debug:
		level = logLevel(log.DebugLevel)
	case verbose:
		level = logLevel(log.InfoLevel)
	}
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !isTerminal(w),
	})
	log.SetLevel(log.Level(level))
	log.Debugf("logging at level %s", log.Level(level))
}
