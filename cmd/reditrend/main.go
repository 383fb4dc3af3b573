package main

import (
	"fmt"
	"os"

	"reditrend/cmd/reditrend/cmd"
	"reditrend/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
