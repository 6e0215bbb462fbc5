package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/landscan/zoneaudit/internal/analysis"
	apierrors "github.com/landscan/zoneaudit/internal/errors"
	"github.com/landscan/zoneaudit/internal/middleware"
	"github.com/landscan/zoneaudit/internal/services"
)

// AnalysisHandler serves the zoning analysis results.
type AnalysisHandler struct {
	service services.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler instance.
func NewAnalysisHandler(service services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
	}
}

// ZoneRequest represents the URI parameters for the zone detail endpoint.
// Zone codes are short district identifiers (R, SRA, GRC...). One district,
// GA/MH, carries a slash, so the code arrives percent-encoded and the
// charset cannot be constrained to alphanumerics.
type ZoneRequest struct {
	Code string `uri:"code" binding:"required,max=8"`
}

// Latest handles GET /api/v1/analysis.
// It returns the full result bundle of the most recent analysis run.
func (h *AnalysisHandler) Latest(c *gin.Context) {
	result, err := h.service.Latest()
	if err != nil {
		if errors.Is(err, services.ErrNoAnalysis) {
			apierrors.ServiceUnavailable(c, "No analysis has been run yet")
			return
		}
		apierrors.InternalServerError(c, "Failed to load analysis results", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Refresh handles POST /api/v1/analysis/refresh.
// It reloads every stored property and recomputes the analysis.
func (h *AnalysisHandler) Refresh(c *gin.Context) {
	log := middleware.GetLogger(c)
	if log != nil {
		log.Info("Recomputing analysis", nil)
	}

	result, err := h.service.RunAnalysis(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoProperties) {
			apierrors.ServiceUnavailable(c, "No property data has been loaded")
			return
		}
		apierrors.InternalServerError(c, "Failed to recompute analysis", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Zone handles GET /api/v1/analysis/zones/:code.
// It returns the ordinance rule and aggregated figures for one zone.
func (h *AnalysisHandler) Zone(c *gin.Context) {
	var req ZoneRequest
	if err := c.ShouldBindUri(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid zone code", nil)
		return
	}

	summary, err := h.service.ZoneSummary(req.Code)
	if err != nil {
		if errors.Is(err, services.ErrNoAnalysis) {
			apierrors.ServiceUnavailable(c, "No analysis has been run yet")
			return
		}
		if errors.Is(err, services.ErrZoneNotFound) {
			apierrors.NotFound(c, "Zone not found: "+req.Code)
			return
		}
		apierrors.InternalServerError(c, "Failed to load zone summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Comparison handles GET /api/v1/analysis/comparison.
// It returns the single-family versus multi-family group comparison.
func (h *AnalysisHandler) Comparison(c *gin.Context) {
	result, err := h.service.Latest()
	if err != nil {
		if errors.Is(err, services.ErrNoAnalysis) {
			apierrors.ServiceUnavailable(c, "No analysis has been run yet")
			return
		}
		apierrors.InternalServerError(c, "Failed to load analysis results", err)
		return
	}

	c.JSON(http.StatusOK, result.ResidentialComparison)
}

// InfrastructureResponse pairs the per-zone infrastructure estimates with
// the group-level contrast.
type InfrastructureResponse struct {
	ByZone     map[string]analysis.ZoneInfrastructure `json:"by_zone"`
	Comparison analysis.InfrastructureComparison      `json:"comparison"`
}

// Infrastructure handles GET /api/v1/analysis/infrastructure.
// It returns per-zone infrastructure burden estimates and the group contrast.
func (h *AnalysisHandler) Infrastructure(c *gin.Context) {
	result, err := h.service.Latest()
	if err != nil {
		if errors.Is(err, services.ErrNoAnalysis) {
			apierrors.ServiceUnavailable(c, "No analysis has been run yet")
			return
		}
		apierrors.InternalServerError(c, "Failed to load analysis results", err)
		return
	}

	c.JSON(http.StatusOK, InfrastructureResponse{
		ByZone:     result.InfrastructureByZone,
		Comparison: result.InfrastructureContrast,
	})
}
