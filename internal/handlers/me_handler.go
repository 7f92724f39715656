package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/middleware"
	"github.com/BruksfildServices01/smart-hire/internal/usecase/account"
)

type MeHandler struct {
	users  user.Repository
	update *account.UpdateProfile
	log    *slog.Logger
}

func NewMeHandler(users user.Repository, update *account.UpdateProfile, log *slog.Logger) *MeHandler {
	return &MeHandler{users: users, update: update, log: log}
}

// --------- Requests ---------

type UpdateMeRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Bio      *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	Timezone *string `json:"timezone,omitempty" binding:"omitempty,iana_tz"`
}

// --------- Handlers ---------

func (h *MeHandler) GetMe(c *gin.Context) {
	who := middleware.Actor(c)
	if !who.Authenticated() {
		httperr.Unauthorized(c, "user_not_in_context", "Not signed in.")
		return
	}

	u, err := h.users.GetUser(c.Request.Context(), who.ID)
	if errors.Is(err, user.ErrNotFound) {
		httperr.NotFound(c, "user_not_found", "User no longer exists.")
		return
	}
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	u, err := h.update.Execute(c.Request.Context(), middleware.Actor(c), account.UpdateProfileInput{
		Name:     req.Name,
		Bio:      req.Bio,
		Timezone: req.Timezone,
	})
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}
