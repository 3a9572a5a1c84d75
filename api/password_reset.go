package api

import (
	"log"
	"time"

	"github.com/tkarusala001/budgetly/config"
	"github.com/tkarusala001/budgetly/database"
	"github.com/tkarusala001/budgetly/models"
	"github.com/tkarusala001/budgetly/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// resetCodeTTL is how long a mailed reset code stays valid.
const resetCodeTTL = 30 * time.Minute

// PasswordResetHandler handles the email-code password reset flow.
type PasswordResetHandler struct {
	cfg          *config.Config
	emailService *service.EmailService
}

// NewPasswordResetHandler creates a password reset handler.
func NewPasswordResetHandler(cfg *config.Config) *PasswordResetHandler {
	return &PasswordResetHandler{
		cfg:          cfg,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RequestResetRequest asks for a reset code by email.
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email" example:"alice@example.com"`
}

// ResetPasswordRequest redeems a mailed code for a new password.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50"`
}

// RequestReset mails a 6-digit reset code
// @Summary Request password reset
// @Description Send a 6-digit reset code to the account's email. Always answers 200 so the endpoint does not leak which emails exist.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "reset request"
// @Success 200 {object} Response "code sent if the account exists"
// @Failure 400 {object} Response "invalid payload"
// @Router /api/v1/auth/password/request-reset [post]
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Same answer whether or not the account exists
		SuccessWithMessage(c, "if the account exists, a reset code has been sent", nil)
		return
	}

	code, err := models.GenerateResetCode()
	if err != nil {
		InternalError(c, "failed to generate reset code")
		return
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to store reset code"))
		return
	}

	if err := h.emailService.SendResetCode(user.Email, user.Username, code); err != nil {
		log.Printf("failed to send reset email to %s: %v", user.Email, err)
		InternalError(c, "failed to send reset email")
		return
	}

	SuccessWithMessage(c, "if the account exists, a reset code has been sent", nil)
}

// ResetPassword redeems a code and sets a new password
// @Summary Reset password with code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "reset payload"
// @Success 200 {object} Response "password reset"
// @Failure 400 {object} Response "invalid payload or invalid/expired code"
// @Router /api/v1/auth/password/reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var reset models.PasswordReset
	if err := database.DB.Where("email = ? AND code = ?", req.Email, req.Code).
		Order("id DESC").First(&reset).Error; err != nil {
		BadRequest(c, "invalid or expired reset code")
		return
	}
	if !reset.IsValid() {
		BadRequest(c, "invalid or expired reset code")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "failed to hash password")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("used", true).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to reset password"))
		return
	}

	SuccessWithMessage(c, "password reset", nil)
}
