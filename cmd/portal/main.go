// Command portal is an interactive terminal client for the student portal service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/and161185/studentportal/internal/app"
	"github.com/and161185/studentportal/internal/config"
	"github.com/and161185/studentportal/internal/gateway"
	"github.com/and161185/studentportal/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// errUsage reports a malformed command line; usage has already been printed.
var errUsage = errors.New("usage")

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, `portal CLI
Usage:
  portal [-addr URL] [-prefix /api] [-timeout 0] [-log-level info] [-env .env]
  portal -version

Settings default to PORTAL_BASE_URL, PORTAL_PREFIX, PORTAL_TIMEOUT and
PORTAL_LOG_LEVEL (optionally from the -env file); flags override them.

`)
	fs.PrintDefaults()
	fmt.Fprint(out, "\n", shellHelp)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// settings is the parsed command line.
type settings struct {
	cfg         config.Config
	showVersion bool
}

// parseSettings parses args, loads configuration from the -env file and the
// environment, then applies the flags given explicitly.
func parseSettings(args []string, errOut io.Writer) (settings, error) {
	fs := flag.NewFlagSet("portal", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { usage(fs) }

	envFile := fs.String("env", ".env", "dotenv file with PORTAL_* settings")
	addr := fs.String("addr", "", "service base URL (default from PORTAL_BASE_URL)")
	prefix := fs.String("prefix", "", "API mount point (default from PORTAL_PREFIX)")
	timeout := fs.Duration("timeout", 0, "per-request timeout, 0 = none (default from PORTAL_TIMEOUT)")
	logLevel := fs.String("log-level", "", "debug|info|warn|error (default from PORTAL_LOG_LEVEL)")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return settings{}, err
		}
		return settings{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return settings{}, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	if *showVersion {
		return settings{showVersion: true}, nil
	}

	cfg, err := config.Read(*envFile)
	if err != nil {
		return settings{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.BaseURL = strings.TrimRight(*addr, "/")
		case "prefix":
			cfg.Prefix = *prefix
		case "timeout":
			cfg.Timeout = *timeout
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevel)
		}
	})
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}
	return settings{cfg: cfg}, nil
}

// main loads settings, wires the client stack and runs the interactive shell.
func main() {
	st, err := parseSettings(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) || errors.Is(err, errUsage) {
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
	if st.showVersion {
		fmt.Printf("portal %s (%s)\n", version, buildDate)
		return
	}
	cfg := st.cfg

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fail(err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.BaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		fail(err)
	}
}

// run wires gateway, service and controller to a terminal view and drives
// the shell until it ends.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, in io.Reader, out io.Writer) error {
	gw, err := gateway.New(gateway.Options{
		BaseURL: cfg.BaseURL,
		Prefix:  cfg.Prefix,
		Timeout: cfg.Timeout,
		Logger:  logger.Named("gateway"),
	})
	if err != nil {
		return err
	}

	tv := newTermView(out)
	ctl := app.New(service.NewPortalService(gw), tv, logger.Named("app"))
	defer ctl.Close()

	sh := newShell(ctl, tv, in, out)
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		sh.password = func(label string) (string, error) {
			fmt.Fprint(out, label)
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			return string(b), err
		}
	}

	fmt.Fprintln(out, "Student portal. Type help for commands.")
	startCtx, cancel := startContext(ctx, cfg.Timeout)
	ctl.Start(startCtx)
	cancel()

	if err := sh.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// startContext bounds the session restore so an unreachable service does
// not block the prompt when no request timeout is configured.
func startContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// newLogger builds a console logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if lvl > zapcore.DebugLevel {
		zc.Development = false
		zc.DisableStacktrace = true
	}
	return zc.Build()
}
