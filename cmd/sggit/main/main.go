package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Duckilicious/sggit/cmd/sggit"
	"github.com/Duckilicious/sggit/pkg/ui/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := sggit.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		stop()
		os.Exit(1)
	}
}
