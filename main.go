package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

// run executes one harness invocation and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	log.SetOutput(stderr)

	cfg := &Config{}
	*cfg = DefaultConfig
	if err := cfg.applyEnv(getenv); err != nil {
		log.Error(err)
		return 1
	}

	var (
		verbose, debug bool
		sum            Summary
	)
	cmd := &cobra.Command{
		Use:   "burntest [flags] [path ...]",
		Short: "Check a program's output against golden fixtures",
		Long: `burntest feeds the source section of every .burntest fixture under the
given paths (default ".") to the subject program and compares its combined
stdout and stderr with the fixture's expected output.

Flags must come before paths.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, paths []string) error {
			setupLogging(stderr, cfg.LogLevel, verbose, debug)
			if len(paths) == 0 {
				paths = []string{"."}
			}

			subject, err := NewSubject(cfg.Subject, cfg.Timeout)
			if err != nil {
				return err
			}
			log.Infof("subject: %s", subject)

			report := NewReporter(stdout, newFormatter(cfg.Color, stdout), cfg.ShowOutput)
			sum, err = NewRunner(subject, report, cfg.KeepGoing).Run(cmd.Context(), paths)
			return err
		},
	}

	flags := cmd.Flags()
	flags.SetInterspersed(false)
	flags.BoolVar(&cfg.ShowOutput, "show-output", cfg.ShowOutput,
		"print the subject's output after every fixture")
	flags.StringVar(&cfg.Subject, "subject", cfg.Subject,
		"subject command line, run as '<subject> -q -' (env "+envSubject+")")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout,
		"kill a subject running longer than this, 0 waits forever (env "+envTimeout+")")
	flags.Var(&cfg.Color, "color", "colorize results: auto, always or never")
	flags.BoolVar(&cfg.KeepGoing, "keep-going", cfg.KeepGoing,
		"report malformed fixtures as failures instead of stopping")
	flags.Var(&cfg.LogLevel, "log-level", "set the diagnostic log level")
	flags.BoolVarP(&verbose, "verbose", "v", false, "alias for --log-level=info")
	flags.BoolVarP(&debug, "debug", "d", false, "alias for --log-level=debug")

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		return 1
	}
	if !sum.OK() {
		return 1
	}
	return 0
}
