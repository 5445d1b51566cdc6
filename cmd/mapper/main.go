// Command mapper finds, creates, updates and destroys rows of PostgreSQL
// tables through models declared in a YAML config file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gopsql/mapper/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
