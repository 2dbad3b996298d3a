// Command inspectionpdf renders inspection reports to PDF and maintains the
// reference lists the forms pick from.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "inspectionpdf: %v\n", err)
		os.Exit(1)
	}
}
