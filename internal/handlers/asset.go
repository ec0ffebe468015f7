package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panelgrid/panelgrid-backend/internal/domain"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/services"
)

type AssetHandler struct {
	log          *logger.Logger
	assetService services.AssetService
}

func NewAssetHandler(log *logger.Logger, assetService services.AssetService) *AssetHandler {
	return &AssetHandler{
		log:          log.With("handler", "AssetHandler"),
		assetService: assetService,
	}
}

// POST /api/assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var in domain.AssetFields
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	asset, err := h.assetService.CreateAsset(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GET /api/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	assets, err := h.assetService.ListAssets(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assets": assets})
}

// GET /api/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetService.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": asset})
}

// PATCH /api/assets/:id
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var patch domain.AssetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	asset, err := h.assetService.UpdateAsset(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": asset})
}

// DELETE /api/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetService.DeleteAsset(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type allocateRequest struct {
	CentreID     string `json:"centre_id"`
	LocationCode string `json:"location_code"`
}

// POST /api/assets/:id/allocate
func (h *AssetHandler) Allocate(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	allocation, err := h.assetService.Allocate(c.Request.Context(), c.Param("id"), req.CentreID, req.LocationCode)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"allocation": allocation})
}

// POST /api/assets/:id/deallocate
func (h *AssetHandler) Deallocate(c *gin.Context) {
	if err := h.assetService.Deallocate(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/assets/:id/allocation
func (h *AssetHandler) GetAllocation(c *gin.Context) {
	allocation, err := h.assetService.GetAllocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"allocation": allocation})
}
