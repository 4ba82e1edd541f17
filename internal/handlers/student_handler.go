package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
	"github.com/mentorhub/dashboard-service/internal/services"
	"github.com/mentorhub/dashboard-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService   services.StudentService
	dashboardService services.DashboardService
}

func NewStudentHandler(studentService services.StudentService, dashboardService services.DashboardService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:      NewBaseHandler(logger),
		studentService:   studentService,
		dashboardService: dashboardService,
	}
}

func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Student deleted"})
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	filters := studentFiltersFromQuery(c)

	students, total, err := h.studentService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"students": students,
		"total":    total,
		"limit":    filters.Limit,
		"offset":   filters.Offset,
	})
}

func (h *StudentHandler) GetStudentProgress(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	report, err := h.dashboardService.StudentProgress(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type assignMentorRequest struct {
	MentorID   string `json:"mentor_id" binding:"required"`
	AssignedBy string `json:"assigned_by"`
}

func (h *StudentHandler) AssignMentor(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req assignMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.AssignMentor(c.Request.Context(), id, req.MentorID, req.AssignedBy)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

type assignPackageRequest struct {
	PackageID  uint   `json:"package_id" binding:"required"`
	AssignedBy string `json:"assigned_by"`
}

func (h *StudentHandler) AssignPackage(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req assignPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.AssignPackage(c.Request.Context(), id, req.PackageID, req.AssignedBy)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) RecordSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	student, err := h.studentService.RecordSession(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

func (h *StudentHandler) RecordPayment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.RecordPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func studentFiltersFromQuery(c *gin.Context) repositories.StudentFilters {
	limit, offset := ParsePagination(c)
	filters := repositories.StudentFilters{
		Search:    c.Query("search"),
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if v := c.Query("mentor_id"); v != "" {
		filters.MentorID = &v
	}
	if v := c.Query("coordinator_id"); v != "" {
		filters.CoordinatorID = &v
	}
	if v := c.Query("batch_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			batchID := uint(id)
			filters.BatchID = &batchID
		}
	}
	if v := c.Query("package_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			packageID := uint(id)
			filters.PackageID = &packageID
		}
	}
	if v := c.Query("status"); v != "" {
		status := models.StudentStatus(v)
		filters.Status = &status
	}
	return filters
}
