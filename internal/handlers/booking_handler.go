package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/smart-hire/internal/actor"
	"github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/middleware"
	"github.com/BruksfildServices01/smart-hire/internal/models"
	ucBooking "github.com/BruksfildServices01/smart-hire/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create *ucBooking.CreateBooking
	update *ucBooking.UpdateBookingStatus
	list   *ucBooking.ListBookingsForUser
	active *ucBooking.ListActiveBookings
	log    *slog.Logger
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	update *ucBooking.UpdateBookingStatus,
	list *ucBooking.ListBookingsForUser,
	active *ucBooking.ListActiveBookings,
	log *slog.Logger,
) *BookingHandler {
	return &BookingHandler{
		create: create,
		update: update,
		list:   list,
		active: active,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Presence is checked by the use case so missing fields keep their own
// error code; the tags only reject malformed values.
type CreateBookingRequest struct {
	ProviderID  string `json:"providerId"`
	ServiceID   string `json:"serviceId"`
	BookingDate string `json:"bookingDate" binding:"omitempty,ymd"`
	StartTime   string `json:"startTime" binding:"omitempty,hhmm"`
	EndTime     string `json:"endTime" binding:"omitempty,hhmm"`
	Notes       string `json:"notes" binding:"max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,booking_status"`
}

// ======================================================
// POST /api/bookings
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	booking, err := h.create.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		ucBooking.CreateBookingInput{
			ProviderID:  req.ProviderID,
			ServiceID:   req.ServiceID,
			BookingDate: req.BookingDate,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": booking,
	})
}

// ======================================================
// PATCH /api/bookings/:id
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_status", "status must be one of pending, confirmed, completed, cancelled")
		return
	}

	booking, err := h.update.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ======================================================
// GET /api/bookings/provider/:id  |  /api/bookings/seeker/:id
// ======================================================

func (h *BookingHandler) ListForProvider(c *gin.Context) {
	h.listFor(c, actor.RoleProvider)
}

func (h *BookingHandler) ListForSeeker(c *gin.Context) {
	h.listFor(c, actor.RoleSeeker)
}

func (h *BookingHandler) listFor(c *gin.Context, role string) {
	bookings, err := h.list.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		role,
		c.Param("id"),
	)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ======================================================
// GET /api/bookings/check-availability?providerId=&date=
// ======================================================

func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	windows, err := h.active.Execute(
		c.Request.Context(),
		c.Query("providerId"),
		c.Query("date"),
	)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	if windows == nil {
		windows = []availability.Window{}
	}
	c.JSON(http.StatusOK, windows)
}
