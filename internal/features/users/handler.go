package users

import (
	"github.com/gin-gonic/gin"
	"github.com/soundwatch/soundwatch-api/internal/features/auth"
	"github.com/soundwatch/soundwatch-api/internal/pkg/response"
)

type Handler struct {
	authRepo *auth.Repository
}

func NewHandler(authRepo *auth.Repository) *Handler {
	return &Handler{
		authRepo: authRepo,
	}
}

// Profile godoc
// @Summary Get current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=auth.User}
// @Failure 404 {object} response.ErrorResponse
// @Router /user/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.authRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to load profile", "STORAGE_ERROR")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found", "NOT_FOUND")
		return
	}

	response.Success(c, user)
}

// GetAll godoc
// @Summary List all accounts (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=[]auth.User}
// @Router /user/getAll [get]
func (h *Handler) GetAll(c *gin.Context) {
	users, err := h.authRepo.GetAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load users", "STORAGE_ERROR")
		return
	}

	response.Success(c, users)
}

// CountUsersOnly godoc
// @Summary Count non-admin accounts (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /user/countUsersOnly [get]
func (h *Handler) CountUsersOnly(c *gin.Context) {
	count, err := h.authRepo.CountByRole(c.Request.Context(), "user")
	if err != nil {
		response.InternalServerError(c, "Failed to count users", "STORAGE_ERROR")
		return
	}

	response.Success(c, gin.H{"count": count})
}

// GetAllUsersOnly godoc
// @Summary List non-admin accounts (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=[]auth.User}
// @Router /user/getAllUsersOnly [get]
func (h *Handler) GetAllUsersOnly(c *gin.Context) {
	users, err := h.authRepo.GetAllByRole(c.Request.Context(), "user")
	if err != nil {
		response.InternalServerError(c, "Failed to load users", "STORAGE_ERROR")
		return
	}

	response.Success(c, users)
}
