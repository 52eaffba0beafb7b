package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"xaty/services"
)

type AuthHandler struct {
	log  *slog.Logger
	auth services.IAuthService
}

func NewAuthHandler(log *slog.Logger, auth services.IAuthService) *AuthHandler {
	return &AuthHandler{log: log, auth: auth}
}

type registerRequest struct {
	Username    string `json:"username" form:"username"`
	Email       string `json:"email" form:"email"`
	DisplayName string `json:"display_name" form:"display_name"`
	Password    string `json:"password" form:"password"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cos de petició invàlid"})
		return
	}

	token, err := h.auth.Register(req.Username, req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.log.Info("user registered", "username", req.Username)
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cos de petició invàlid"})
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}
