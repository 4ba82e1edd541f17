package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/dashboard-service/internal/services"
	"github.com/mentorhub/dashboard-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

func (h *ExportHandler) ExportStudentsXLSX(c *gin.Context) {
	h.LogRequest(c, "Exporting students workbook")

	data, filename, err := h.exportService.StudentsXLSX(c.Request.Context(), studentFiltersFromQuery(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ExportHandler) ExportStudentsCSV(c *gin.Context) {
	h.LogRequest(c, "Exporting students csv")

	data, filename, err := h.exportService.StudentsCSV(c.Request.Context(), studentFiltersFromQuery(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *ExportHandler) ExportStatsXLSX(c *gin.Context) {
	h.LogRequest(c, "Exporting dashboard stats workbook")

	data, filename, err := h.exportService.StatsXLSX(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
