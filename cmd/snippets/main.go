// Package main is the entry point for the snippets command line.
package main

import (
	"context"
	"os"

	"github.com/roguepikachu/snippets/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
