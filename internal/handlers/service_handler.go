package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/smart-hire/internal/domain/catalog"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/httpresp"
	"github.com/BruksfildServices01/smart-hire/internal/middleware"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type ServiceHandler struct {
	repo catalog.Repository
	log  *slog.Logger
}

func NewServiceHandler(repo catalog.Repository, log *slog.Logger) *ServiceHandler {
	return &ServiceHandler{repo: repo, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Title            string  `json:"title" binding:"required,max=120"`
	ShortDescription string  `json:"shortDescription" binding:"max=255"`
	Description      string  `json:"description"`
	Category         string  `json:"category" binding:"max=50"`
	Pricing          float64 `json:"pricing" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Title            *string  `json:"title,omitempty" binding:"omitempty,min=1,max=120"`
	ShortDescription *string  `json:"shortDescription,omitempty" binding:"omitempty,max=255"`
	Description      *string  `json:"description,omitempty"`
	Category         *string  `json:"category,omitempty" binding:"omitempty,max=50"`
	Pricing          *float64 `json:"pricing,omitempty" binding:"omitempty,gte=0"`
	Active           *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

// List is public. Inactive services are hidden unless active=all.
func (h *ServiceHandler) List(c *gin.Context) {
	filter := catalog.Filter{
		ProviderID: strings.TrimSpace(c.Query("providerId")),
		Category:   strings.ToLower(strings.TrimSpace(c.Query("category"))),
		Query:      strings.TrimSpace(c.Query("query")),
		ActiveOnly: c.Query("active") != "all",
	}

	services, err := h.repo.ListServices(c.Request.Context(), filter)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	httpresp.List(c, services)
}

// Get counts every successful read as one view.
func (h *ServiceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	err := h.repo.IncrementViews(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	service, err := h.repo.GetService(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	who := middleware.Actor(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service := models.Service{
		ProviderID:       who.ID,
		Title:            strings.TrimSpace(req.Title),
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Category:         strings.ToLower(strings.TrimSpace(req.Category)),
		Pricing:          req.Pricing,
		Active:           true,
	}

	if err := h.repo.CreateService(c.Request.Context(), &service); err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	who := middleware.Actor(c)

	service, err := h.repo.GetService(c.Request.Context(), c.Param("id"))
	// other providers' services are reported as missing
	if errors.Is(err, catalog.ErrNotFound) || (err == nil && service.ProviderID != who.ID) {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Title != nil {
		service.Title = strings.TrimSpace(*req.Title)
	}
	if req.ShortDescription != nil {
		service.ShortDescription = *req.ShortDescription
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Category != nil {
		service.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Pricing != nil {
		service.Pricing = *req.Pricing
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.repo.UpdateService(c.Request.Context(), service); err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	httpresp.OK(c, service)
}
