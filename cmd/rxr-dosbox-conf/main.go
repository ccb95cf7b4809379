package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/arthur-debert/rxr/pkg/style"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
