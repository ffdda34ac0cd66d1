package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tessera/internal/application/identity/usecases"
	"tessera/internal/shared/logger"
	"tessera/internal/shared/utils"
)

type IdentityHandler struct {
	beginSignupUC    *usecases.BeginSignupUseCase
	completeSignupUC *usecases.CompleteSignupUseCase
	loginUC          *usecases.LoginUseCase
	logger           logger.Interface
}

func NewIdentityHandler(
	beginSignupUC *usecases.BeginSignupUseCase,
	completeSignupUC *usecases.CompleteSignupUseCase,
	loginUC *usecases.LoginUseCase,
) *IdentityHandler {
	return &IdentityHandler{
		beginSignupUC:    beginSignupUC,
		completeSignupUC: completeSignupUC,
		loginUC:          loginUC,
		logger:           logger.NewLogger(),
	}
}

type BeginSignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CompleteSignupRequest struct {
	Token string `json:"token" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	SID   string `json:"sid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	User      userResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (h *IdentityHandler) BeginSignup(c *gin.Context) {
	var req BeginSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for begin signup", "error", err)
		utils.ErrorResponse(c, 400, "invalid request body")
		return
	}

	result, err := h.beginSignupUC.Execute(c.Request.Context(), usecases.BeginSignupCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// The confirmation token normally goes out by mail; returning it keeps
	// the flow usable without a mail sink.
	utils.CreatedResponse(c, gin.H{"token": result.Token}, "signup started")
}

func (h *IdentityHandler) CompleteSignup(c *gin.Context) {
	var req CompleteSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "invalid request body")
		return
	}

	result, err := h.completeSignupUC.Execute(c.Request.Context(), usecases.CompleteSignupCommand{
		Token: req.Token,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, userResponse{
		SID:   result.User.SID(),
		Email: result.User.Email(),
		Name:  result.User.Name(),
		Role:  result.User.Role().String(),
	}, "account created")
}

func (h *IdentityHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "invalid request body")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, loginResponse{
		User: userResponse{
			SID:   result.User.SID(),
			Email: result.User.Email(),
			Name:  result.User.Name(),
			Role:  result.User.Role().String(),
		},
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}
