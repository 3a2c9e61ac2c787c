// Command linefmt formats every line of a template file against the fixed
// variable table and writes "<line> <formatted>" records to the output file.
//
// With no arguments it reads test.txt and writes test-python.txt in the
// working directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

var errorPrefix = color.New(color.FgRed, color.Bold)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	cancel()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes a one-line diagnostic for err.
func printError(w io.Writer, err error) {
	errorPrefix.Fprint(w, "error:")
	fmt.Fprintf(w, " %v\n", err)
}
