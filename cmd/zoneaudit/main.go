// Command zoneaudit fetches Portsmouth NH property records, runs the zoning
// analysis over them, renders text reports, and serves the results over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/landscan/zoneaudit/internal/config"
	"github.com/landscan/zoneaudit/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "zoneaudit",
		Short:   "Portsmouth NH zoning compliance and fiscal analysis",
		Long:    "zoneaudit pulls parcel records from the city's MapGeo and VGSI data sources,\nevaluates them against the zoning ordinance, and reports on violations,\nrevenue density, and infrastructure burden.",
		Version: version,
	}

	root.AddCommand(newFetchCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every command.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.New(cfg.Server.Env), nil
}
