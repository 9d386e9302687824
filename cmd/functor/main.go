// Command functor manages functor projects.
//
// Usage:
//
//	functor [--dir path] [-v] <command> [arguments]
//
// Commands:
//
//	init <template>   record a template in functor.json (alias: i)
//	build             write the build manifest (alias: b)
//	develop           render the preview scene (aliases: d, dev)
//
// Every command requires functor.json in the project directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	functor "github.com/functor-dev/functor"
	"github.com/functor-dev/functor/internal/project"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// command is one CLI subcommand.
type command struct {
	name    string
	aliases []string
	summary string
	run     func(env *env, args []string) error
}

var commands = []command{
	{name: "init", aliases: []string{"i"}, summary: "record a template in functor.json", run: runInit},
	{name: "build", aliases: []string{"b"}, summary: "write the build manifest", run: runBuild},
	{name: "develop", aliases: []string{"d", "dev"}, summary: "render the preview scene", run: runDevelop},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, a := range c.aliases {
			if a == name {
				return c, true
			}
		}
	}
	return command{}, false
}

// env carries what every command needs.
type env struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
}

// errUsage marks errors that should print usage and exit with exitUsage.
var errUsage = errors.New("usage")

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("functor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dir     string
		verbose bool
	)
	fs.StringVar(&dir, "dir", "", "project directory (default: current directory)")
	fs.StringVar(&dir, "d", "", "shorthand for --dir")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	fs.Usage = func() { usage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	prev := functor.Logger()
	defer functor.SetLogger(prev)
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	functor.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if fs.NArg() == 0 {
		usage(fs, stderr)
		return exitUsage
	}
	cmd, ok := lookup(fs.Arg(0))
	if !ok {
		fmt.Fprintf(stderr, "functor: unknown command %q\n", fs.Arg(0))
		usage(fs, stderr)
		return exitUsage
	}

	wd, err := project.WorkingDirectory(dir)
	if err != nil {
		fmt.Fprintf(stderr, "functor: %v\n", err)
		return exitError
	}
	if _, err := project.Validate(wd); err != nil {
		fmt.Fprintf(stderr, "functor: %v\n", err)
		fmt.Fprintf(stderr, "functor: run inside a functor project or pass --dir\n")
		return exitError
	}

	e := &env{dir: wd, stdout: stdout, stderr: stderr}
	if err := cmd.run(e, fs.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "functor %s: %v\n", cmd.name, err)
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: functor [flags] <command> [arguments]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s (aliases: %v)\n", c.name, c.summary, c.aliases)
	}
	fmt.Fprintf(w, "\nFlags:\n")
	fs.PrintDefaults()
}
