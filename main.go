package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/tablero/cmd"
	"github.com/thenoetrevino/tablero/internal/cli"
)

func main() {
	err := cmd.Execute(context.Background())

	// command failures were already reported by their formatter
	var coded *cli.CodedError
	if err != nil && !errors.As(err, &coded) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}
