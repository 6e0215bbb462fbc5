package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/landscan/zoneaudit/internal/database"
	"github.com/landscan/zoneaudit/internal/models"
)

// PropertyRepository defines the interface for property data access operations.
type PropertyRepository interface {
	// UpsertBatch inserts or updates the given property records keyed by
	// parcel ID. Returns the number of records written.
	UpsertBatch(ctx context.Context, properties []models.PropertyRecord) (int, error)

	// ListAll returns every stored property record.
	// Returns an empty slice if the table is empty (not an error).
	ListAll(ctx context.Context) ([]models.PropertyRecord, error)

	// FindByParcelID returns the property with the given parcel ID.
	// Returns nil, nil if no property is found (not an error).
	FindByParcelID(ctx context.Context, parcelID string) (*models.PropertyRecord, error)

	// Count returns the number of stored property records.
	Count(ctx context.Context) (int, error)
}

// propertyRepository is the concrete implementation of PropertyRepository.
type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new instance of PropertyRepository.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

const propertyColumns = `
	parcel_id,
	address,
	owner,
	account,
	zoning,
	land_use_code,
	land_use_desc,
	total_value,
	land_value,
	parcel_area_acres,
	building_footprint_sqft,
	living_area_sqft
`

// UpsertBatch writes property records using a pgx batch so a full fetch of
// several thousand parcels completes in one round trip per pool connection.
// Derived fields (sqft area, lot coverage) are recomputed on read, so only
// source fields are persisted.
func (r *propertyRepository) UpsertBatch(ctx context.Context, properties []models.PropertyRecord) (int, error) {
	if len(properties) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (parcel_id) DO UPDATE SET
			address = EXCLUDED.address,
			owner = EXCLUDED.owner,
			account = EXCLUDED.account,
			zoning = EXCLUDED.zoning,
			land_use_code = EXCLUDED.land_use_code,
			land_use_desc = EXCLUDED.land_use_desc,
			total_value = EXCLUDED.total_value,
			land_value = EXCLUDED.land_value,
			parcel_area_acres = EXCLUDED.parcel_area_acres,
			building_footprint_sqft = EXCLUDED.building_footprint_sqft,
			living_area_sqft = EXCLUDED.living_area_sqft,
			fetched_at = now()
	`

	batch := &pgx.Batch{}
	for _, p := range properties {
		batch.Queue(query,
			p.ParcelID,
			p.Address,
			p.Owner,
			p.Account,
			p.Zoning,
			p.LandUseCode,
			p.LandUseDesc,
			p.TotalValue,
			p.LandValue,
			p.ParcelAreaAcres,
			p.BuildingFootprintSqft,
			p.LivingAreaSqft,
		)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for range properties {
		if _, err := results.Exec(); err != nil {
			return written, fmt.Errorf("failed to upsert property batch: %w", err)
		}
		written++
	}

	return written, nil
}

// ListAll returns every stored property, with derived area fields recomputed.
func (r *propertyRepository) ListAll(ctx context.Context) ([]models.PropertyRecord, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY parcel_id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var results []models.PropertyRecord
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		results = append(results, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	if results == nil {
		results = []models.PropertyRecord{}
	}

	return results, nil
}

// FindByParcelID returns a single property or nil if not found.
func (r *propertyRepository) FindByParcelID(ctx context.Context, parcelID string) (*models.PropertyRecord, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE parcel_id = $1`

	p, err := scanProperty(r.db.Pool.QueryRow(ctx, query, parcelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property %s: %w", parcelID, err)
	}

	return p, nil
}

// Count returns the total number of stored properties.
func (r *propertyRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM properties`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

// scanProperty scans one property row and recomputes derived area fields.
func scanProperty(row pgx.Row) (*models.PropertyRecord, error) {
	var p models.PropertyRecord
	err := row.Scan(
		&p.ParcelID,
		&p.Address,
		&p.Owner,
		&p.Account,
		&p.Zoning,
		&p.LandUseCode,
		&p.LandUseDesc,
		&p.TotalValue,
		&p.LandValue,
		&p.ParcelAreaAcres,
		&p.BuildingFootprintSqft,
		&p.LivingAreaSqft,
	)
	if err != nil {
		return nil, err
	}

	p.DeriveAreas()
	return &p, nil
}
