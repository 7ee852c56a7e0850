// Command gitpilot is the terminal entry point: it parses flags, locates
// the enclosing git repository, wires the five components of spec.md §3
// together, and runs the event loop until quit or a fatal error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/gitpilot/gitpilot/internal/action"
	"github.com/gitpilot/gitpilot/internal/applog"
	"github.com/gitpilot/gitpilot/internal/clip"
	"github.com/gitpilot/gitpilot/internal/config"
	"github.com/gitpilot/gitpilot/internal/controller"
	"github.com/gitpilot/gitpilot/internal/repo"
	"github.com/gitpilot/gitpilot/internal/termio"
)

// version is set by the release build; "dev" otherwise.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("gitpilot", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config.toml (default: "+config.DefaultPath()+")")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *showVersion {
		fmt.Println("gitpilot " + version)
		return 0
	}

	path := "."
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	repoPath, err := discoverRepo(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gitpilot: "+err.Error())
		return 1
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gitpilot: "+err.Error())
		return 1
	}

	log, err := applog.Open(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gitpilot: "+err.Error())
		return 1
	}

	coll, err := repo.Open(repoPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gitpilot: "+err.Error())
		return 1
	}

	term, err := termio.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "gitpilot: "+err.Error())
		return 1
	}
	if err := term.EnterRawMode(); err != nil {
		fmt.Fprintln(os.Stderr, "gitpilot: "+err.Error())
		return 1
	}
	if err := term.EnterAltScreen(); err != nil {
		term.Restore()
		fmt.Fprintln(os.Stderr, "gitpilot: "+err.Error())
		return 1
	}

	size, sizeErr := term.Size()
	if errors.Is(sizeErr, termio.ErrSizeTooSmall) {
		term.Restore()
		fmt.Fprintf(os.Stderr, "gitpilot: terminal too small (%dx%d, need %dx%d)\n", size.Cols, size.Rows, termio.MinWidth, termio.MinHeight)
		return 1
	}

	clipWriter := clip.New(os.Stdout)
	c := controller.New(term, coll, action.DefaultTable(), cfg, log, clipWriter, filepath.Base(repoPath), size.Cols, size.Rows)

	resizeCh, stopResize := termio.WatchResize()
	defer stopResize()
	c.WatchResize(resizeCh)

	ctx, cancel := signalContext()
	defer cancel()

	exitCode, runErr := c.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatal("event loop exited with error", runErr)
		return 2
	}
	return exitCode
}

// signalContext cancels on SIGINT/SIGTERM so Run's deferred terminal
// restore still executes (spec.md §5).
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()
	return ctx, cancel
}

// discoverRepo walks upward from start looking for a .git entry, mirroring
// git's own repository discovery.
func discoverRepo(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	dir := abs
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("not a git repository (or any parent up to /)")
		}
		dir = parent
	}
}
