package fetch

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/landscan/zoneaudit/internal/cache"
	"github.com/landscan/zoneaudit/internal/config"
	"github.com/landscan/zoneaudit/internal/logger"
)

// Assessor pages embed the figures in prose, so extraction is regex-based.
// The footprint patterns are tried in order; the first match wins.
var (
	livingAreaPattern = regexp.MustCompile(`(?i)Living Area.*?(\d+,?\d*)\s*SF`)

	footprintPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Building Footprint.*?(\d+,?\d*)\s*sq\s*ft`),
		regexp.MustCompile(`(?i)Total Building.*?(\d+,?\d*)\s*sq\s*ft`),
		regexp.MustCompile(`(?i)Gross Building.*?(\d+,?\d*)\s*sq\s*ft`),
	}
)

// BuildingData holds the building figures scraped from a VGSI parcel page.
type BuildingData struct {
	LivingAreaSqft        float64
	BuildingFootprintSqft float64
}

// VGSIClient scrapes building data from VGSI (Vision Government Solutions)
// assessor parcel pages.
type VGSIClient struct {
	collector *colly.Collector
	baseURL   string
	cache     *cache.PageCache
	log       *logger.Logger
}

// NewVGSIClient creates a VGSI scraper. The shared parent collector carries
// the politeness limits; each fetch runs on a clone. pageCache may be nil.
func NewVGSIClient(cfg config.FetchConfig, pageCache *cache.PageCache, log *logger.Logger) (*VGSIClient, error) {
	// Condo units can share one assessor account, so the same parcel page
	// may legitimately be requested more than once.
	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(cfg.RequestTimeout)

	// VGSI is a shared municipal service; keep request pacing polite even
	// though the fetcher fans out across parcels.
	err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Concurrency,
		RandomDelay: 500 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set collector limit rule: %w", err)
	}

	return &VGSIClient{
		collector: c,
		baseURL:   strings.TrimRight(cfg.VGSIBaseURL, "/"),
		cache:     pageCache,
		log:       log.WithComponent("vgsi"),
	}, nil
}

// FetchBuilding retrieves the building figures for one assessor account.
// Returns nil, nil when the page yields no recognizable building data.
func (c *VGSIClient) FetchBuilding(ctx context.Context, account string) (*BuildingData, error) {
	url := fmt.Sprintf("%s/Parcel.aspx?Pid=%s", c.baseURL, account)
	cacheKey := "vgsi:" + account

	body, hit, err := c.cache.Get(ctx, cacheKey)
	if err != nil {
		c.log.Warn("Cache read failed, fetching directly", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}

	if !hit {
		body, err = c.visit(ctx, url)
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

	return parseBuildingHTML(string(body)), nil
}

// visit runs one request on a collector clone and captures the raw body.
func (c *VGSIClient) visit(ctx context.Context, url string) ([]byte, error) {
	collector := c.collector.Clone()

	var body []byte
	var fetchErr error

	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("request to %s failed (status %d): %w", url, r.StatusCode, err)
	})

	if err := collector.Visit(url); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", url, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return body, nil
}

// parseBuildingHTML extracts living area and footprint from a parcel page.
// When no explicit footprint is published, the living area stands in for it.
func parseBuildingHTML(html string) *BuildingData {
	var data BuildingData
	found := false

	if m := livingAreaPattern.FindStringSubmatch(html); m != nil {
		data.LivingAreaSqft = parseGroupedNumber(m[1])
		found = true
	}

	for _, pattern := range footprintPatterns {
		if m := pattern.FindStringSubmatch(html); m != nil {
			data.BuildingFootprintSqft = parseGroupedNumber(m[1])
			found = true
			break
		}
	}

	if data.BuildingFootprintSqft == 0 && data.LivingAreaSqft > 0 {
		data.BuildingFootprintSqft = data.LivingAreaSqft
	}

	if !found {
		return nil
	}
	return &data
}

// parseGroupedNumber converts a possibly comma-grouped numeric string.
func parseGroupedNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
