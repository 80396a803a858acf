package main

import (
	"fmt"
	"os"

	"github.com/skilletlabs/skillet/cmd/skillet/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cmd.ExitCode(err))
}
