// ================== internal/features/auth/handler.go ==================
package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/soundwatch/soundwatch-api/internal/config"
	"github.com/soundwatch/soundwatch-api/internal/pkg/response"
	"github.com/soundwatch/soundwatch-api/internal/pkg/token"
	apperrors "github.com/soundwatch/soundwatch-api/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	repo   *Repository
	mailer Mailer
	cfg    *config.Config
	log    *logrus.Logger
}

func NewHandler(repo *Repository, mailer Mailer, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{
		repo:   repo,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Register with email, password, and name; sends a verification mail
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := ValidateRegister(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to register. Please try again.", "STORAGE_ERROR")
		return
	}
	if existing != nil {
		response.Conflict(c, "Email already registered", "DUPLICATE_EMAIL")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password", "INTERNAL_ERROR")
		return
	}

	user := &User{
		Email:             req.Email,
		Password:          string(hashedPassword),
		Name:              strings.TrimSpace(req.Name),
		Role:              "user",
		Verified:          false,
		VerificationToken: uuid.NewString(),
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.Conflict(c, "Email already registered", "DUPLICATE_EMAIL")
			return
		}
		response.InternalServerError(c, "Failed to register. Please try again.", "STORAGE_ERROR")
		return
	}

	// Registration stands even if the mail bounces; the client can ask
	// for a resend.
	if err := h.mailer.SendVerification(user.Email, user.VerificationToken); err != nil {
		h.log.WithField("email", user.Email).WithError(err).Warn("failed to send verification mail")
	}

	response.Created(c, gin.H{
		"user":    user,
		"message": "Registered. Check your email to verify your account.",
	})
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /auth/verify-email [get]
func (h *Handler) VerifyEmail(c *gin.Context) {
	verificationToken := c.Query("token")
	if verificationToken == "" {
		response.BadRequest(c, "Verification token is required", "MISSING_TOKEN")
		return
	}

	user, err := h.repo.MarkVerified(c.Request.Context(), verificationToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Invalid or expired verification token", "INVALID_TOKEN")
			return
		}
		response.InternalServerError(c, "Failed to verify email. Please try again.", "STORAGE_ERROR")
		return
	}

	response.Success(c, gin.H{
		"email":    user.Email,
		"verified": true,
	})
}

// Login godoc
// @Summary Login user
// @Description Authenticate with email and password; requires a verified email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "User login credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := ValidateLogin(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to login. Please try again.", "STORAGE_ERROR")
		return
	}
	if user == nil {
		response.Unauthorized(c, "Invalid email or password", "AUTH_FAILED")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid email or password", "AUTH_FAILED")
		return
	}

	if !user.Verified {
		response.Forbidden(c, "Email not verified", "EMAIL_NOT_VERIFIED")
		return
	}

	jwt, err := token.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.cfg)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token", "INTERNAL_ERROR")
		return
	}

	response.Success(c, AuthResponse{
		Token: jwt,
		User:  user,
	})
}
