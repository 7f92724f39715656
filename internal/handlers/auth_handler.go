package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/usecase/account"
)

type AuthHandler struct {
	register *account.Register
	login    *account.Login
	log      *slog.Logger
}

func NewAuthHandler(register *account.Register, login *account.Login, log *slog.Logger) *AuthHandler {
	return &AuthHandler{register: register, login: login, log: log}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email" binding:"max=100"`
	Password string `json:"password" binding:"max=72"`
	Role     string `json:"role" binding:"omitempty,user_role"`
	Timezone string `json:"timezone" binding:"omitempty,iana_tz"`
	Bio      string `json:"bio" binding:"max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.register.Execute(c.Request.Context(), account.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Timezone: req.Timezone,
		Bio:      req.Bio,
	})
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
