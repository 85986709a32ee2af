package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/clickcha/core"
	"github.com/layer-3/clickcha/service"
)

// Fixed user-facing verification messages.
const (
	msgNotFound = "Verification failed: Captcha expired or doesn't exist, please try again"
	msgMismatch = "Verification failed: Need to click %d targets, but received %d clicks"
	msgSuccess  = "Verification successful"
	msgWrong    = "Verification failed, please follow the instructions and click correctly"
)

// CaptchaHandlers contains HTTP handlers for captcha endpoints
type CaptchaHandlers struct {
	captchaService *service.CaptchaService
}

// NewCaptchaHandlers creates new captcha handlers
func NewCaptchaHandlers(captchaService *service.CaptchaService) *CaptchaHandlers {
	return &CaptchaHandlers{
		captchaService: captchaService,
	}
}

// CaptchaResponse is the client-facing view of a fresh challenge. Target
// geometry never leaves the server.
type CaptchaResponse struct {
	CaptchaID   string    `json:"captcha_id"`
	ImageData   string    `json:"image_data"`
	Prompt      string    `json:"prompt"`
	TargetCount int       `json:"target_count"`
	ExpiresAt   time.Time `json:"expires_at"`
	ImageWidth  int       `json:"image_width"`
	ImageHeight int       `json:"image_height"`
}

// VerifyRequest is the body of a verification submission
type VerifyRequest struct {
	// Clicks carries no "required" binding: an empty click list must
	// reach the count-mismatch path, not a 400.
	CaptchaID string               `json:"captcha_id" binding:"required"`
	Clicks    []core.ClickPosition `json:"clicks"`
}

// VerifyResponse is the verification outcome
type VerifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Generate handles the captcha generation request
func (h *CaptchaHandlers) Generate(c *gin.Context) {
	challenge, err := h.captchaService.Create(c.Request.Context())
	if err != nil {
		if errors.Is(err, core.ErrFontNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create captcha"})
		return
	}

	c.JSON(http.StatusOK, CaptchaResponse{
		CaptchaID:   challenge.CaptchaID,
		ImageData:   challenge.ImageData,
		Prompt:      challenge.Prompt,
		TargetCount: challenge.TargetCount,
		ExpiresAt:   challenge.ExpiresAt(h.captchaService.TTL()),
		ImageWidth:  challenge.ImageWidth,
		ImageHeight: challenge.ImageHeight,
	})
}

// Verify handles the captcha verification request. Every outcome is a
// 200 with {success, message}; only a malformed body is a 400.
func (h *CaptchaHandlers) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	challenge, err := h.captchaService.Fetch(c.Request.Context(), req.CaptchaID)
	if err != nil {
		if errors.Is(err, core.ErrChallengeNotFound) {
			c.JSON(http.StatusOK, VerifyResponse{Success: false, Message: msgNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify captcha"})
		return
	}

	// Wrong click count is a structural error: the challenge is burned
	// immediately, no second chance.
	if len(req.Clicks) != len(challenge.Targets) {
		h.captchaService.Discard(c.Request.Context(), req.CaptchaID)
		c.JSON(http.StatusOK, VerifyResponse{
			Success: false,
			Message: mismatchMessage(len(challenge.Targets), len(req.Clicks)),
		})
		return
	}

	valid, err := h.captchaService.Verify(c.Request.Context(), req.CaptchaID, req.Clicks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify captcha"})
		return
	}

	if valid {
		c.JSON(http.StatusOK, VerifyResponse{Success: true, Message: msgSuccess})
		return
	}
	c.JSON(http.StatusOK, VerifyResponse{Success: false, Message: msgWrong})
}

func mismatchMessage(expected, received int) string {
	return fmt.Sprintf(msgMismatch, expected, received)
}
