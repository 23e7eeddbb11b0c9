package pipeline

import (
	"errors"
	"strings"
)

// ErrEmptyStageName is returned for a bare "-" or "--" on the command line.
var ErrEmptyStageName = errors.New("empty stage name")

// Command is one stage invocation: a stage name and its arguments.
type Command struct {
	Name string
	Args []string
}

// Parse turns command-line arguments into stage invocations.
//
// If the first argument does not start with "-", the whole line is a single
// stage: "name args...". Otherwise "--name" opens a stage, "-xyz" opens one
// stage per letter (x and y get no arguments, z collects what follows), and
// plain arguments are added to the stage opened last.
func Parse(args []string) ([]Command, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if !strings.HasPrefix(args[0], "-") {
		return []Command{{Name: args[0], Args: append([]string(nil), args[1:]...)}}, nil
	}

	var cmds []Command
	open := func(name string) {
		cmds = append(cmds, Command{Name: name})
	}

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--"):
			if arg == "--" {
				return nil, ErrEmptyStageName
			}
			open(arg[2:])
		case strings.HasPrefix(arg, "-"):
			if arg == "-" {
				return nil, ErrEmptyStageName
			}
			for _, short := range arg[1:] {
				open(string(short))
			}
		default:
			last := &cmds[len(cmds)-1]
			last.Args = append(last.Args, arg)
		}
	}

	return cmds, nil
}
