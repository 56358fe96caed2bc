// Command server serves the snaptools HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ferdiebergado/snaptools/internal/app"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "path to the JSON config file (overrides SNAPTOOLS_CONFIG)")
	pflag.Parse()

	if *configFile != "" {
		if err := os.Setenv("SNAPTOOLS_CONFIG", *configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	if err := app.Run(context.Background()); err != nil {
		slog.Error("Server stopped with an error.", "reason", err)
		os.Exit(1)
	}
}
