package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/Duckilicious/sggit/cmd/sggit"
	"github.com/Duckilicious/sggit/internal/version"
)

func main() {
	rootCmd := sggit.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SGGIT",
		Section: "1",
		Source:  "sggit " + version.Version,
		Manual:  "sggit manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
