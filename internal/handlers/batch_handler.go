package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/dashboard-service/internal/repositories"
	"github.com/mentorhub/dashboard-service/internal/services"
	"github.com/mentorhub/dashboard-service/internal/utils"
)

// BatchHandler serves both cohort batches and tuition packages.
type BatchHandler struct {
	BaseHandler
	batchService   services.BatchService
	packageService services.PackageService
}

func NewBatchHandler(batchService services.BatchService, packageService services.PackageService, logger utils.Logger) *BatchHandler {
	return &BatchHandler{
		BaseHandler:    NewBaseHandler(logger),
		batchService:   batchService,
		packageService: packageService,
	}
}

// ===== BATCHES =====

func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var req services.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	batch, err := h.batchService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *BatchHandler) GetBatch(c *gin.Context) {
	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	batch, err := h.batchService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *BatchHandler) UpdateBatch(c *gin.Context) {
	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	batch, err := h.batchService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *BatchHandler) DeleteBatch(c *gin.Context) {
	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.batchService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Batch deleted"})
}

func (h *BatchHandler) ListBatches(c *gin.Context) {
	limit, offset := ParsePagination(c)
	filters := repositories.BatchFilters{Limit: limit, Offset: offset}
	if v := c.Query("coordinator_id"); v != "" {
		filters.CoordinatorID = &v
	}

	batches, total, err := h.batchService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"batches": batches,
		"total":   total,
	})
}

// ===== PACKAGES =====

func (h *BatchHandler) CreatePackage(c *gin.Context) {
	var req services.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	pkg, err := h.packageService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

func (h *BatchHandler) GetPackage(c *gin.Context) {
	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	pkg, err := h.packageService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *BatchHandler) UpdatePackage(c *gin.Context) {
	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	pkg, err := h.packageService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *BatchHandler) DeletePackage(c *gin.Context) {
	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.packageService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Package deleted"})
}

func (h *BatchHandler) ListPackages(c *gin.Context) {
	limit, offset := ParsePagination(c)

	packages, total, err := h.packageService.List(c.Request.Context(), repositories.PackageFilters{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"packages": packages,
		"total":    total,
	})
}
