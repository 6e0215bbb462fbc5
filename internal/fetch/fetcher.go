package fetch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/landscan/zoneaudit/internal/config"
	"github.com/landscan/zoneaudit/internal/logger"
	"github.com/landscan/zoneaudit/internal/models"
)

// ParcelRef identifies one parcel to fetch: the MapGeo display ID plus the
// assessor account suffix extracted from the u_id column.
type ParcelRef struct {
	DisplayID string
	AccountID string
}

// LoadParcelRefs reads parcel identifiers from a CSV export with displayid
// and u_id columns. Rows without a displayid are skipped. limit bounds the
// number of refs returned; 0 means no limit.
func LoadParcelRefs(path string, limit int) ([]ParcelRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parcel list: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read parcel list header: %w", err)
	}

	displayCol, uidCol := -1, -1
	for i, name := range header {
		// Excel exports prefix the first header cell with a UTF-8 BOM.
		switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "\uFEFF") {
		case "displayid":
			displayCol = i
		case "u_id":
			uidCol = i
		}
	}
	if displayCol == -1 {
		return nil, fmt.Errorf("parcel list has no displayid column")
	}

	var refs []ParcelRef
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parcel list row: %w", err)
		}

		displayID := strings.TrimSpace(row[displayCol])
		if displayID == "" {
			continue
		}

		ref := ParcelRef{DisplayID: displayID}
		if uidCol != -1 && uidCol < len(row) {
			// u_id is dash-separated; the account is the last segment.
			if uid := strings.TrimSpace(row[uidCol]); uid != "" {
				parts := strings.Split(uid, "-")
				ref.AccountID = parts[len(parts)-1]
			}
		}

		refs = append(refs, ref)
		if limit > 0 && len(refs) >= limit {
			break
		}
	}

	return refs, nil
}

// Fetcher combines the MapGeo and VGSI clients into a bounded-concurrency
// property fetch.
type Fetcher struct {
	mapgeo      *MapGeoClient
	vgsi        *VGSIClient
	concurrency int
	log         *logger.Logger
}

// NewFetcher creates a Fetcher over the two source clients.
func NewFetcher(mapgeo *MapGeoClient, vgsi *VGSIClient, cfg config.FetchConfig, log *logger.Logger) *Fetcher {
	return &Fetcher{
		mapgeo:      mapgeo,
		vgsi:        vgsi,
		concurrency: cfg.Concurrency,
		log:         log.WithComponent("fetcher"),
	}
}

// FetchOne retrieves and combines the data for a single parcel. The MapGeo
// record is required; VGSI building data is best-effort and its absence
// leaves the building fields zero.
func (f *Fetcher) FetchOne(ctx context.Context, ref ParcelRef) (*models.PropertyRecord, error) {
	record, err := f.mapgeo.FetchProperty(ctx, ref.DisplayID)
	if err != nil {
		return nil, fmt.Errorf("mapgeo fetch for %s failed: %w", ref.DisplayID, err)
	}

	// Prefer the account number MapGeo reports over the CSV-derived one.
	account := record.Account
	if account == "" {
		account = ref.AccountID
	}

	if account != "" {
		building, err := f.vgsi.FetchBuilding(ctx, account)
		if err != nil {
			f.log.Warn("VGSI fetch failed, keeping MapGeo data only", map[string]interface{}{
				"parcel_id": record.ParcelID,
				"account":   account,
				"error":     err.Error(),
			})
		} else if building != nil {
			record.BuildingFootprintSqft = building.BuildingFootprintSqft
			record.LivingAreaSqft = building.LivingAreaSqft
			record.DeriveAreas()
		}
	}

	return record, nil
}

// FetchAll fetches every referenced parcel with at most the configured
// number of in-flight parcels. Individual failures are logged and skipped;
// the returned slice keeps ref order for the parcels that succeeded.
func (f *Fetcher) FetchAll(ctx context.Context, refs []ParcelRef) []models.PropertyRecord {
	f.log.Info("Starting property fetch", map[string]interface{}{
		"parcels":     len(refs),
		"concurrency": f.concurrency,
	})

	results := make([]*models.PropertyRecord, len(refs))
	sem := make(chan struct{}, f.concurrency)
	var wg sync.WaitGroup

	var done int64
	var mu sync.Mutex

	for i, ref := range refs {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(i int, ref ParcelRef) {
			defer wg.Done()
			defer func() { <-sem }()

			record, err := f.FetchOne(ctx, ref)
			if err != nil {
				f.log.Debug("Skipping parcel", map[string]interface{}{
					"display_id": ref.DisplayID,
					"error":      err.Error(),
				})
			} else {
				results[i] = record
			}

			mu.Lock()
			done++
			if done%100 == 0 {
				f.log.Info("Fetch progress", map[string]interface{}{
					"fetched": done,
					"total":   len(refs),
				})
			}
			mu.Unlock()
		}(i, ref)
	}

	wg.Wait()

	properties := make([]models.PropertyRecord, 0, len(refs))
	for _, r := range results {
		if r != nil {
			properties = append(properties, *r)
		}
	}

	f.log.Info("Property fetch complete", map[string]interface{}{
		"requested": len(refs),
		"fetched":   len(properties),
	})

	return properties
}
