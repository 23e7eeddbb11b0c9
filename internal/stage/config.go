package stage

import (
	"context"
	"io"

	"github.com/boshu2/todo/internal/config"
	"github.com/boshu2/todo/internal/formatter"
)

// Config writes every key of the configuration the stages run with, its
// value and where it came from. Input is ignored.
type Config struct {
	env *Env
}

func (c *Config) Run(_ context.Context, _ io.Reader, out io.Writer, _ []string) error {
	settings, err := config.ResolveFrom(c.env.Config)
	if err != nil {
		return err
	}

	table := formatter.NewTable(out, "KEY", "VALUE", "SOURCE")
	for _, s := range settings {
		table.AddRow(s.Key, s.Value, string(s.Source))
	}
	return table.Render()
}
