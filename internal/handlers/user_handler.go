package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
	"github.com/mentorhub/dashboard-service/internal/services"
	"github.com/mentorhub/dashboard-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted"})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := userFiltersFromQuery(c)

	users, total, err := h.userService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":  users,
		"total":  total,
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

// ListMentors is a role-scoped shortcut over ListUsers.
func (h *UserHandler) ListMentors(c *gin.Context) {
	h.listByRole(c, models.RoleMentor, "mentors")
}

func (h *UserHandler) ListCoordinators(c *gin.Context) {
	h.listByRole(c, models.RoleCoordinator, "coordinators")
}

func (h *UserHandler) listByRole(c *gin.Context, role models.UserRole, key string) {
	filters := userFiltersFromQuery(c)
	filters.Role = &role

	users, total, err := h.userService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		key:     users,
		"total": total,
	})
}

type signInRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *UserHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.SignIn(c.Request.Context(), req.Email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) SignOut(c *gin.Context) {
	if err := h.userService.SignOut(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Signed out"})
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.userService.CurrentUser(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

func (h *UserHandler) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.userService.SetTheme(c.Request.Context(), services.Theme(req.Theme)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}

func (h *UserHandler) GetTheme(c *gin.Context) {
	theme, err := h.userService.GetTheme(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func userFiltersFromQuery(c *gin.Context) repositories.UserFilters {
	limit, offset := ParsePagination(c)
	filters := repositories.UserFilters{
		Search:    c.Query("search"),
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if v := c.Query("role"); v != "" {
		role := models.UserRole(v)
		filters.Role = &role
	}
	if v := c.Query("supervisor_id"); v != "" {
		filters.SupervisorID = &v
	}
	if v := c.Query("status"); v != "" {
		status := models.UserStatus(v)
		filters.Status = &status
	}
	return filters
}
