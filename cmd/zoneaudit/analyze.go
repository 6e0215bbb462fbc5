package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/landscan/zoneaudit/internal/database"
	"github.com/landscan/zoneaudit/internal/models"
	"github.com/landscan/zoneaudit/internal/repository"
	"github.com/landscan/zoneaudit/internal/services"
	"github.com/landscan/zoneaudit/internal/zoning"
)

type analyzeFlags struct {
	in     string
	out    string
	fromDB bool
}

func newAnalyzeCmd() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the zoning analysis over fetched property records",
		Long:  "Analyze loads property records from a JSON file (or the database with\n--from-db), evaluates every parcel against the zoning ordinance rule table,\nand writes the combined analysis result as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.in, "in", "properties.json", "Property records JSON file")
	f.StringVar(&flags.out, "out", "analysis.json", "Write the analysis result to this JSON file")
	f.BoolVar(&flags.fromDB, "from-db", false, "Load property records from PostgreSQL instead of a file")

	return cmd
}

func runAnalyze(ctx context.Context, flags analyzeFlags) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	var properties []models.PropertyRecord
	if flags.fromDB {
		db, err := database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		repo := repository.NewPropertyRepository(db)
		properties, err = repo.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load property records: %w", err)
		}
	} else {
		properties, err = readPropertiesFile(flags.in)
		if err != nil {
			return err
		}
	}

	if len(properties) == 0 {
		return fmt.Errorf("no property records to analyze")
	}

	service := services.NewAnalysisService(nil, zoning.DefaultRules(), cfg.Analysis.ExampleCap, log)
	result := service.AnalyzeProperties(properties)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}
	if err := os.WriteFile(flags.out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", flags.out, err)
	}

	log.Info("Analysis complete", map[string]interface{}{
		"properties": result.TotalPropertiesAnalyzed,
		"zones":      len(result.ZoningAnalysis.Zones),
		"violations": len(result.ViolationAnalysis.AllViolations),
		"out":        flags.out,
	})
	return nil
}

func readPropertiesFile(path string) ([]models.PropertyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var properties []models.PropertyRecord
	if err := json.Unmarshal(data, &properties); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Recompute derived fields so hand-edited files stay consistent.
	for i := range properties {
		properties[i].DeriveAreas()
	}
	return properties, nil
}
