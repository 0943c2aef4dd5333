package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	schemeerrors "github.com/cwbudde/go-scheme/internal/errors"
	"github.com/cwbudde/go-scheme/internal/interp/runtime"
	"github.com/cwbudde/go-scheme/internal/repl"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	noColor bool
	trace   bool
)

var rootCmd = &cobra.Command{
	Use:   "scheme [file] [-]",
	Short: "A compact Scheme interpreter",
	Long: `scheme is a tree-walking interpreter for a compact Scheme subset:
a numeric tower, pairs and proper/improper lists, lambda and closures,
tail calls via a trampoline evaluator, and first-class continuations
through call/cc.

With no arguments it starts the interactive REPL. With one file
argument it loads and evaluates the file and exits. With a file
argument followed by "-" it loads the file, then drops into the REPL
with that file's top-level definitions already bound.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(2),
	RunE:    runScheme,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "report the continuation stack's peak depth and dump it on an uncaught error")
}

// runScheme implements spec.md §6's CLI surface:
//
//	scheme              start the REPL on a fresh global environment
//	scheme FILE         load and evaluate FILE, exit 0 on success, 1 on error
//	scheme FILE -       load FILE, then start the REPL on the resulting environment
func runScheme(cmd *cobra.Command, args []string) error {
	color.NoColor = noColor

	switch len(args) {
	case 0:
		g := newGlobal()
		repl.Loop(cmd.InOrStdin(), cmd.OutOrStdout(), g.Env, reportError)
		return nil
	case 1:
		return runFile(args[0])
	case 2:
		if args[1] != "-" {
			return fmt.Errorf("unexpected second argument %q, expected \"-\"", args[1])
		}
		return runFileThenREPL(cmd, args[0])
	default:
		return fmt.Errorf("at most a file argument and a trailing \"-\" are accepted")
	}
}

func runFile(path string) error {
	g := newGlobal()
	if _, err := loadTraced(path, g.Env); err != nil {
		reportError(err)
		return fmt.Errorf("execution failed")
	}
	return nil
}

func runFileThenREPL(cmd *cobra.Command, path string) error {
	g := newGlobal()
	env, err := loadTraced(path, g.Env)
	if err != nil {
		reportError(err)
		return fmt.Errorf("execution failed")
	}
	repl.Loop(cmd.InOrStdin(), cmd.OutOrStdout(), env, reportError)
	return nil
}

// reportError renders an uncaught error to stderr: a *schemeerrors.SourceError
// (a reader parse-error, spec.md §7) prints with its caret-pointing source
// context; a user-error prints its message as is, since it already starts
// with "Error: "; anything else prints with an "Error: " prefix. --trace
// additionally dumps the pending continuation
// frames for errors that are not user-errors, per spec.md §7's unwind
// behavior — that dump is attached by loadTraced via lastTrace.
func reportError(err error) {
	if se, ok := err.(*schemeerrors.SourceError); ok {
		fmt.Fprintln(os.Stderr, se.Format(!noColor))
		return
	}

	message := err.Error()
	if !runtime.IsUserError(err) {
		message = "Error: " + err.Error()
		if !noColor {
			message = color.RedString("Error: ") + err.Error()
		}
	}
	fmt.Fprintln(os.Stderr, message)

	if trace && !runtime.IsUserError(err) && lastTrace != nil {
		fmt.Fprintln(os.Stderr, schemeerrors.NewStackTrace(lastTrace.Frames()).String())
		fmt.Fprintf(os.Stderr, "[trace] peak continuation-stack depth: %d\n", lastTrace.PeakDepth())
	}
}
