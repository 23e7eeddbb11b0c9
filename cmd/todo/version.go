package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
)

func runVersion(_ context.Context, _ io.Reader, out io.Writer, _ []string) error {
	_, err := fmt.Fprintf(out, "todo version %s\n  Go version: %s\n  Platform: %s/%s\n",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}
