package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/boshu2/todo/internal/formatter"
	"github.com/boshu2/todo/internal/pipeline"
	"github.com/boshu2/todo/internal/stage"
)

const usage = `Usage:
  todo <stage> [args...]
  todo -<s><s>... [args...] --<stage> [args...] ...

  With -xyz every letter opens a stage; only the last one takes the
  arguments that follow.
`

// helpStage prints the description, usage and every stage in reg.
func helpStage(reg *stage.Registry) pipeline.Stage {
	return pipeline.StageFunc(func(_ context.Context, _ io.Reader, out io.Writer, _ []string) error {
		if _, err := fmt.Fprintf(out, "%s\n\n%s\n", rootCmd.Long, usage); err != nil {
			return err
		}

		table := formatter.NewTable(out, "STAGE", "DESCRIPTION")
		for _, e := range reg.Entries() {
			table.AddRow(strings.Join(e.Names, ", "), e.Short)
		}
		return table.Render()
	})
}
