// Package main provides the entry point for the bucketmap CLI.
//
// bucketmap drives, demonstrates and inspects a concurrent hash table
// with a fixed number of independently locked buckets.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wizex/bucketmap/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(command.ExitStatus(err))
	}
}
