package main

import (
	"context"
	"fmt"
	"os"

	"taskforge/internal/cli"
)

func main() {
	result, err := cli.Run(context.Background(), os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(result.ExitCode)
}
