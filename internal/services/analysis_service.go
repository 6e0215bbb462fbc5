package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/landscan/zoneaudit/internal/analysis"
	"github.com/landscan/zoneaudit/internal/logger"
	"github.com/landscan/zoneaudit/internal/models"
	"github.com/landscan/zoneaudit/internal/repository"
	"github.com/landscan/zoneaudit/internal/zoning"
)

// Service-level errors
var (
	ErrNoProperties = errors.New("no properties available for analysis")
	ErrNoAnalysis   = errors.New("no analysis has been run")
	ErrZoneNotFound = errors.New("zone not found")
)

// AnalysisResult bundles every aggregate produced by one analysis run.
// The JSON field names form the interchange format written by the CLI and
// served by the API, so they are part of the public contract.
type AnalysisResult struct {
	AnalysisDate            time.Time                              `json:"analysis_date"`
	TotalPropertiesAnalyzed int                                    `json:"total_properties_analyzed"`
	ZoningAnalysis          analysis.MetricsResult                 `json:"zoning_analysis"`
	ViolationAnalysis       analysis.ViolationReport               `json:"violation_analysis"`
	ResidentialComparison   analysis.GroupComparison               `json:"residential_comparison"`
	InfrastructureByZone    map[string]analysis.ZoneInfrastructure `json:"infrastructure_by_zone"`
	InfrastructureContrast  analysis.InfrastructureComparison      `json:"infrastructure_comparison"`
}

// ZoneSummary is the per-zone view served by the zone detail endpoint:
// the ordinance rule (when the zone is in the rule table) joined with the
// zone's aggregated metrics, violations, and infrastructure figures.
type ZoneSummary struct {
	Zone           string                         `json:"zone"`
	Rule           *zoning.ZoneRule               `json:"rule,omitempty"`
	Metrics        *analysis.ZoneMetrics          `json:"metrics,omitempty"`
	Violations     *analysis.ZoneViolationSummary `json:"violations,omitempty"`
	Infrastructure *analysis.ZoneInfrastructure   `json:"infrastructure,omitempty"`
}

// AnalysisService defines the interface for running and querying the zoning
// analysis.
type AnalysisService interface {
	// RunAnalysis loads every stored property and computes a fresh
	// AnalysisResult, retaining it as the latest run.
	// Returns ErrNoProperties if the store is empty.
	RunAnalysis(ctx context.Context) (*AnalysisResult, error)

	// AnalyzeProperties computes an AnalysisResult from an in-memory
	// property collection, retaining it as the latest run. It never fails:
	// an empty collection produces an empty (but valid) result.
	AnalyzeProperties(properties []models.PropertyRecord) *AnalysisResult

	// Latest returns the most recent AnalysisResult.
	// Returns ErrNoAnalysis if no analysis has been run yet.
	Latest() (*AnalysisResult, error)

	// ZoneSummary returns the per-zone view for one zone code.
	// Returns ErrNoAnalysis if no analysis has been run, and
	// ErrZoneNotFound if the code is in neither the rule table nor the
	// aggregated results.
	ZoneSummary(code string) (*ZoneSummary, error)
}

// analysisService is the concrete implementation of AnalysisService.
type analysisService struct {
	repo       repository.PropertyRepository
	rules      zoning.RuleTable
	exampleCap int
	log        *logger.Logger

	mu     sync.RWMutex
	latest *AnalysisResult
}

// NewAnalysisService creates a new instance of AnalysisService. exampleCap
// bounds the per-zone violation example lists in the report.
func NewAnalysisService(repo repository.PropertyRepository, rules zoning.RuleTable, exampleCap int, log *logger.Logger) AnalysisService {
	return &analysisService{
		repo:       repo,
		rules:      rules,
		exampleCap: exampleCap,
		log:        log,
	}
}

// RunAnalysis loads all stored properties and computes every aggregate.
func (s *analysisService) RunAnalysis(ctx context.Context) (*AnalysisResult, error) {
	properties, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("Failed to load properties for analysis", err, nil)
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}

	if len(properties) == 0 {
		s.log.Warn("Analysis requested with no stored properties", nil)
		return nil, ErrNoProperties
	}

	return s.AnalyzeProperties(properties), nil
}

// AnalyzeProperties runs every aggregator over the given collection.
func (s *analysisService) AnalyzeProperties(properties []models.PropertyRecord) *AnalysisResult {
	start := time.Now()

	metrics := analysis.AggregateMetrics(properties)
	violations := analysis.AggregateViolations(properties, s.rules, s.exampleCap)
	comparison := analysis.CompareGroups(metrics, violations, analysis.SingleFamilyGroup, analysis.MultiFamilyGroup)
	infrastructure := analysis.AggregateInfrastructure(properties, s.rules)
	infraContrast := analysis.CompareInfrastructure(infrastructure, analysis.SingleFamilyGroup, analysis.MultiFamilyGroup)

	result := &AnalysisResult{
		AnalysisDate:            time.Now().UTC(),
		TotalPropertiesAnalyzed: len(properties),
		ZoningAnalysis:          metrics,
		ViolationAnalysis:       violations,
		ResidentialComparison:   comparison,
		InfrastructureByZone:    infrastructure,
		InfrastructureContrast:  infraContrast,
	}

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	s.log.Info("Analysis complete", map[string]interface{}{
		"properties":           len(properties),
		"zones":                len(metrics.Zones),
		"unknown_zone_parcels": violations.UnknownZoneParcels,
		"duration_ms":          time.Since(start).Milliseconds(),
	})

	return result
}

// Latest returns the retained result of the most recent run.
func (s *analysisService) Latest() (*AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return nil, ErrNoAnalysis
	}
	return s.latest, nil
}

// ZoneSummary joins the ordinance rule with the latest aggregates for one
// zone. A zone is served if it appears in the rule table or in the data:
// a rule-table zone with no parcels yields a rule-only summary, and an
// unrecognized-but-present zoning code yields a data-only one.
func (s *analysisService) ZoneSummary(code string) (*ZoneSummary, error) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	if latest == nil {
		return nil, ErrNoAnalysis
	}

	summary := &ZoneSummary{Zone: code}

	if rule, ok := s.rules.Lookup(code); ok {
		summary.Rule = &rule
	}
	if metrics, ok := latest.ZoningAnalysis.Zones[code]; ok {
		summary.Metrics = &metrics
	}
	if violations, ok := latest.ViolationAnalysis.ViolationsByZone[code]; ok {
		summary.Violations = violations
	}
	if infra, ok := latest.InfrastructureByZone[code]; ok {
		summary.Infrastructure = &infra
	}

	if summary.Rule == nil && summary.Metrics == nil {
		s.log.Debug("Zone summary requested for unknown zone", map[string]interface{}{
			"zone": code,
		})
		return nil, fmt.Errorf("%w: %s", ErrZoneNotFound, code)
	}

	return summary, nil
}
