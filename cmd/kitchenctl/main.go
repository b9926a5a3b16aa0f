package main

import (
	"fmt"
	"os"

	"meal-delivery-service/internal/cli"
	"meal-delivery-service/internal/config"
)

func main() {
	rootCmd := cli.RootCmd(config.Load())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
