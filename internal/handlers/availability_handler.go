package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/middleware"
	"github.com/BruksfildServices01/smart-hire/internal/models"
	ucAvailability "github.com/BruksfildServices01/smart-hire/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	get   *ucAvailability.GetAvailability
	save  *ucAvailability.SaveAvailability
	slots *ucAvailability.ListOpenSlots
	log   *slog.Logger
}

func NewAvailabilityHandler(
	get *ucAvailability.GetAvailability,
	save *ucAvailability.SaveAvailability,
	slots *ucAvailability.ListOpenSlots,
	log *slog.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		get:   get,
		save:  save,
		slots: slots,
		log:   log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AvailabilitySlotRequest struct {
	DayOfWeek       string `json:"dayOfWeek" binding:"required,weekday"`
	StartTime       string `json:"startTime" binding:"required,hhmm"`
	EndTime         string `json:"endTime" binding:"required,hhmm"`
	IsAvailable     *bool  `json:"isAvailable"`
	RecurringWeekly *bool  `json:"recurringWeekly"`
	SpecificDate    string `json:"specificDate" binding:"omitempty,ymd"`
}

type SaveAvailabilityRequest struct {
	Slots    []AvailabilitySlotRequest `json:"slots" binding:"dive"`
	Settings *domain.Settings          `json:"settings" binding:"required"`
}

type availabilityResponse struct {
	Slots    []models.AvailabilityRule `json:"slots"`
	Settings domain.Settings           `json:"settings"`
}

// ======================================================
// GET /api/availability/:id
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	providerID := c.Param("id")

	view, err := h.get.Execute(c.Request.Context(), providerID)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	slots := make([]models.AvailabilityRule, 0, len(view.Rules))
	for _, r := range view.Rules {
		slots = append(slots, domain.RuleToModel(providerID, r))
	}

	c.JSON(http.StatusOK, availabilityResponse{
		Slots:    slots,
		Settings: view.Settings,
	})
}

// ======================================================
// POST /api/availability/:id
// ======================================================

func (h *AvailabilityHandler) Save(c *gin.Context) {
	var req SaveAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := ucAvailability.SaveAvailabilityInput{
		Settings: *req.Settings,
		Rules:    make([]ucAvailability.RuleInput, 0, len(req.Slots)),
	}
	for _, s := range req.Slots {
		in.Rules = append(in.Rules, ucAvailability.RuleInput{
			DayOfWeek:       s.DayOfWeek,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			IsAvailable:     boolOr(s.IsAvailable, true),
			RecurringWeekly: boolOr(s.RecurringWeekly, true),
			SpecificDate:    s.SpecificDate,
		})
	}

	err := h.save.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		c.Param("id"),
		in,
	)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ======================================================
// GET /api/providers/:id/slots?date=YYYY-MM-DD
// ======================================================

func (h *AvailabilityHandler) OpenSlots(c *gin.Context) {
	out, err := h.slots.Execute(
		c.Request.Context(),
		c.Param("id"),
		c.Query("date"),
	)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	if out.Slots == nil {
		out.Slots = []domain.Window{}
	}
	c.JSON(http.StatusOK, out)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
