package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/boshu2/todo/internal/config"
	"github.com/boshu2/todo/internal/pipeline"
	"github.com/boshu2/todo/internal/stage"
)

var (
	verbose bool
	stderr  io.Writer = os.Stderr
)

// rootCmd is the only command. Stage names are not cobra subcommands: the
// whole argument list is handed to the pipeline parser, so "-lsf bug" and
// "--list --sort" reach it untouched.
var rootCmd = &cobra.Command{
	Use:   "todo <stage> [args...] | todo -<s>... [args...] --<stage> [args...]",
	Short: "Keep issue notes as files and chain stages over them",
	Long: `todo keeps issue notes as plain files under issues/ directories and
chains built-in stages in one process. Each stage's output is the next
stage's input.

Examples:
  todo list                               every issue file below here
  todo -lsf bug                           list, sort, keep lines matching "bug"
  todo --list projects --sort             project roots
  todo add name:"fix bug" id:42           create issues/B.42.fix bug.md
  todo --list --filter login --comment ok comment on issues matching "login"
  todo --list --filter login --do vim     open matching issues in vim`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	// "completion" is a stage like any other; cobra's built-in command would
	// take the name over.
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.RunE = runRoot
	rootCmd.ValidArgsFunction = completeStages
}

// Execute runs the root command and exits non-zero on any fatal error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// The engine already reported unknown stages on stdout.
		if !errors.Is(err, pipeline.ErrCommandNotFound) {
			printError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	verbose = cfg.Verbose
	stderr = cmd.ErrOrStderr()

	cmds, err := pipeline.Parse(args)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		cmds = []pipeline.Command{{Name: "help"}}
	}

	in := cmd.InOrStdin()
	reg := newRegistry(stage.Env{
		Config:   cfg,
		Terminal: terminal(in),
		Stderr:   cmd.ErrOrStderr(),
		Logf:     VerbosePrintf,
	})

	VerbosePrintf("todo: %d stage(s), config user %s\n", len(cmds), cfg.User)
	return pipeline.New(reg).Run(cmd.Context(), in, cmd.OutOrStdout(), cmds)
}

// newRegistry returns the built-in stages plus the ones that only make
// sense on the command line.
func newRegistry(env stage.Env) *stage.Registry {
	reg := stage.NewRegistry(env)
	reg.Register(helpStage(reg), "Show this help", "help", "h")
	reg.Register(pipeline.StageFunc(runVersion), "Show version information", "version")
	reg.Register(pipeline.StageFunc(runCompletion), "Generate shell completion scripts (bash, zsh, fish)", "completion")
	return reg
}

// terminal returns in as a file when it is an interactive terminal.
func terminal(in io.Reader) *os.File {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return f
}

// VerbosePrintf prints to stderr only when verbose mode is enabled.
func VerbosePrintf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(stderr, format, args...)
	}
}

// printError writes "Error: <err>", in red when w is a terminal.
func printError(w io.Writer, err error) {
	label := color.New(color.FgRed, color.Bold)
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		label.DisableColor()
	}
	label.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}
