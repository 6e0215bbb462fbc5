package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/landscan/zoneaudit/internal/cache"
	"github.com/landscan/zoneaudit/internal/config"
	"github.com/landscan/zoneaudit/internal/database"
	"github.com/landscan/zoneaudit/internal/fetch"
	"github.com/landscan/zoneaudit/internal/logger"
	"github.com/landscan/zoneaudit/internal/models"
	"github.com/landscan/zoneaudit/internal/repository"
)

type fetchFlags struct {
	parcelsCSV string
	out        string
	limit      int
	saveDB     bool
}

func newFetchCmd() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch property records from MapGeo and VGSI",
		Long:  "Fetch reads parcel references from a city parcel CSV, retrieves each record\nfrom the MapGeo property API, enriches it with building data scraped from the\nVGSI assessor pages, and writes the combined records to a JSON file and/or\nthe database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.parcelsCSV, "parcels", "parcels.csv", "Parcel reference CSV (displayid and u_id columns)")
	f.StringVar(&flags.out, "out", "properties.json", "Write fetched records to this JSON file (empty to skip)")
	f.IntVar(&flags.limit, "limit", 0, "Fetch at most this many parcels (0 = all)")
	f.BoolVar(&flags.saveDB, "save-db", false, "Upsert fetched records into PostgreSQL")

	return cmd
}

func runFetch(ctx context.Context, flags fetchFlags) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	refs, err := fetch.LoadParcelRefs(flags.parcelsCSV, flags.limit)
	if err != nil {
		return fmt.Errorf("failed to load parcel references: %w", err)
	}
	log.Info("Loaded parcel references", map[string]interface{}{
		"path":  flags.parcelsCSV,
		"count": len(refs),
	})

	pageCache, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		// The cache is an optimization; fetching works without it.
		log.Warn("Page cache unavailable, fetching without cache", map[string]interface{}{
			"addr":  cfg.Redis.Addr,
			"error": err.Error(),
		})
		pageCache = nil
	}
	defer pageCache.Close()

	mapgeo := fetch.NewMapGeoClient(cfg.Fetch, pageCache, log)
	vgsi, err := fetch.NewVGSIClient(cfg.Fetch, pageCache, log)
	if err != nil {
		return fmt.Errorf("failed to create VGSI client: %w", err)
	}

	fetcher := fetch.NewFetcher(mapgeo, vgsi, cfg.Fetch, log)
	properties := fetcher.FetchAll(ctx, refs)
	log.Info("Fetch complete", map[string]interface{}{
		"requested": len(refs),
		"fetched":   len(properties),
	})

	if flags.out != "" {
		if err := writePropertiesFile(flags.out, properties); err != nil {
			return err
		}
		log.Info("Wrote property records", map[string]interface{}{
			"path":  flags.out,
			"count": len(properties),
		})
	}

	if flags.saveDB {
		if err := saveProperties(ctx, cfg, log, properties); err != nil {
			return err
		}
	}

	return nil
}

func writePropertiesFile(path string, properties []models.PropertyRecord) error {
	data, err := json.MarshalIndent(properties, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode property records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func saveProperties(ctx context.Context, cfg *config.Config, log *logger.Logger, properties []models.PropertyRecord) error {
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := repository.NewPropertyRepository(db)
	stored, err := repo.UpsertBatch(ctx, properties)
	if err != nil {
		return fmt.Errorf("failed to store property records: %w", err)
	}
	log.Info("Stored property records", map[string]interface{}{"count": stored})
	return nil
}
