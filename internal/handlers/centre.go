package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panelgrid/panelgrid-backend/internal/domain"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/services"
)

// CentreHandler is a thin adapter: it parses JSON shape only and leaves
// every domain rule to the service.
type CentreHandler struct {
	log           *logger.Logger
	centreService services.CentreService
}

func NewCentreHandler(log *logger.Logger, centreService services.CentreService) *CentreHandler {
	return &CentreHandler{
		log:           log.With("handler", "CentreHandler"),
		centreService: centreService,
	}
}

// POST /api/centres
func (h *CentreHandler) CreateCentre(c *gin.Context) {
	var in domain.CentreFields
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	centre, err := h.centreService.CreateCentre(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"centre": centre})
}

// GET /api/centres
func (h *CentreHandler) ListCentres(c *gin.Context) {
	centres, err := h.centreService.ListCentres(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"centres": centres})
}

// GET /api/centres/:id
func (h *CentreHandler) GetCentre(c *gin.Context) {
	centre, err := h.centreService.GetCentre(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"centre": centre})
}

// PATCH /api/centres/:id
func (h *CentreHandler) UpdateCentre(c *gin.Context) {
	var patch domain.CentrePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	centre, err := h.centreService.UpdateCentre(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"centre": centre})
}

// DELETE /api/centres/:id
func (h *CentreHandler) DeleteCentre(c *gin.Context) {
	if err := h.centreService.DeleteCentre(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/centres/:id/locations
func (h *CentreHandler) AddLocation(c *gin.Context) {
	var in domain.LocationFields
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	location, err := h.centreService.AddLocation(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": location})
}

// GET /api/centres/:id/locations
func (h *CentreHandler) ListLocations(c *gin.Context) {
	locations, err := h.centreService.ListLocations(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"locations": locations})
}

// PATCH /api/centres/:id/locations/:locationId
func (h *CentreHandler) UpdateLocation(c *gin.Context) {
	var patch domain.LocationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	location, err := h.centreService.UpdateLocation(c.Request.Context(), c.Param("id"), c.Param("locationId"), patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"location": location})
}

// DELETE /api/centres/:id/locations/:locationId
func (h *CentreHandler) RemoveLocation(c *gin.Context) {
	if err := h.centreService.RemoveLocation(c.Request.Context(), c.Param("id"), c.Param("locationId")); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
