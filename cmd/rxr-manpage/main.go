package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/rxr/cmd/rxr/commands"
	"github.com/arthur-debert/rxr/internal/version"
)

func main() {
	header := &doc.GenManHeader{
		Title:   "RXR",
		Section: "1",
		Source:  "rxr " + version.Version,
		Manual:  "rxr manual",
	}

	if err := doc.GenMan(commands.NewRootCmd(), header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
