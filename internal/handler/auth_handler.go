package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/auth"
)

// Account is a configured staff login. Tokens are stateless after issue.
type Account struct {
	Password string
	Role     auth.Role
}

type AuthHandler struct {
	gate     *auth.Gate
	accounts map[string]Account
	logger   *zap.Logger
}

func NewAuthHandler(gate *auth.Gate, accounts map[string]Account, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		gate:     gate,
		accounts: accounts,
		logger:   logger,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	account, ok := h.accounts[req.Username]
	if !ok || subtle.ConstantTimeCompare([]byte(account.Password), []byte(req.Password)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.gate.Issue(req.Username, account.Role)
	if err != nil {
		h.logger.Error("Token issue failed", zap.String("user", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"role":  account.Role,
	})
}
