package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boshu2/todo/internal/config"
	"github.com/boshu2/todo/internal/stage"
)

// ErrUnknownShell is returned by the completion stage for an unsupported shell.
var ErrUnknownShell = errors.New("unknown shell")

// runCompletion writes a completion script for the shell named by the first
// argument:
//
//	todo completion bash > /etc/bash_completion.d/todo
//	todo completion zsh > "${fpath[1]}/_todo"
//	todo completion fish > ~/.config/fish/completions/todo.fish
func runCompletion(_ context.Context, _ io.Reader, out io.Writer, args []string) error {
	shell := ""
	if len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(out, true)
	case "zsh":
		return rootCmd.GenZshCompletion(out)
	case "fish":
		return rootCmd.GenFishCompletion(out, true)
	}
	return fmt.Errorf("%w %q (want bash, zsh or fish)", ErrUnknownShell, shell)
}

// completeStages offers stage names for the first word and file names after.
func completeStages(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	var names []string
	for _, e := range newRegistry(stage.Env{Config: config.Default()}).Entries() {
		for _, name := range e.Names {
			if strings.HasPrefix(name, toComplete) {
				names = append(names, name+"\t"+e.Short)
			}
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
