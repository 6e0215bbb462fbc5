package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/landscan/zoneaudit/internal/cache"
	"github.com/landscan/zoneaudit/internal/config"
	"github.com/landscan/zoneaudit/internal/logger"
	"github.com/landscan/zoneaudit/internal/models"
)

// MapGeoClient fetches parcel attribute data from a MapGeo property dataset.
type MapGeoClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	cache     *cache.PageCache
	log       *logger.Logger
}

// NewMapGeoClient creates a MapGeo API client. pageCache may be nil.
func NewMapGeoClient(cfg config.FetchConfig, pageCache *cache.PageCache, log *logger.Logger) *MapGeoClient {
	return &MapGeoClient{
		baseURL:   strings.TrimRight(cfg.MapGeoBaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.RequestTimeout},
		cache:     pageCache,
		log:       log.WithComponent("mapgeo"),
	}
}

// flexFloat decodes JSON numbers that may arrive as numbers, plain numeric
// strings, or comma-grouped strings ("1,234,500"). Null and empty string
// decode to 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric string %q: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexString decodes JSON values that may arrive as strings or numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	*s = flexString(bytes.TrimSpace(data))
	return nil
}

// mapGeoEnvelope is the response wrapper around a property record.
type mapGeoEnvelope struct {
	Data mapGeoProperty `json:"data"`
}

// mapGeoProperty is the subset of MapGeo dataset fields the analysis uses.
type mapGeoProperty struct {
	PropID      flexString `json:"propID"`
	ID          flexString `json:"id"`
	DisplayName string     `json:"displayName"`
	ZoningCode  string     `json:"zoningCode"`
	LandUseCode flexString `json:"landUseCode"`
	LndUseDesc  string     `json:"lndUseDesc"`
	TotalValue  flexFloat  `json:"totalValue"`
	LandValue   flexFloat  `json:"landValue"`
	ParcelArea  flexFloat  `json:"parcelArea"`
	OwnerName   string     `json:"ownerName"`
	Account     flexString `json:"account"`
}

// FetchProperty retrieves one parcel's attributes by MapGeo display ID and
// maps them onto a PropertyRecord. Building fields are left zero; the VGSI
// client fills them in afterwards.
func (c *MapGeoClient) FetchProperty(ctx context.Context, displayID string) (*models.PropertyRecord, error) {
	url := fmt.Sprintf("%s/api/ui/datasets/properties/%s", c.baseURL, displayID)
	cacheKey := "mapgeo:" + displayID

	body, hit, err := c.cache.Get(ctx, cacheKey)
	if err != nil {
		c.log.Warn("Cache read failed, fetching directly", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}

	if !hit {
		body, err = c.get(ctx, url)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, cacheKey, body); err != nil {
			c.log.Warn("Cache write failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err.Error(),
			})
		}
	}

	var envelope mapGeoEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode property %s: %w", displayID, err)
	}

	props := envelope.Data

	parcelID := string(props.PropID)
	if parcelID == "" {
		parcelID = string(props.ID)
	}
	if parcelID == "" {
		return nil, fmt.Errorf("property %s has no parcel ID", displayID)
	}

	record := &models.PropertyRecord{
		ParcelID:        parcelID,
		Address:         props.DisplayName,
		Owner:           props.OwnerName,
		Account:         string(props.Account),
		Zoning:          props.ZoningCode,
		LandUseCode:     string(props.LandUseCode),
		LandUseDesc:     props.LndUseDesc,
		TotalValue:      float64(props.TotalValue),
		LandValue:       float64(props.LandValue),
		ParcelAreaAcres: float64(props.ParcelArea),
	}
	record.DeriveAreas()

	return record, nil
}

func (c *MapGeoClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
