package api

import (
	"errors"
	"net/http"
	"strconv"

	"gearshare/internal/domain/booking"
	reqdto "gearshare/internal/handler/dto/request"
	resdto "gearshare/internal/handler/dto/response"
	"gearshare/internal/handler/middleware"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book an item for a time slot; the booking starts in WAITING
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, errs.ErrOwnBookingNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cannot book your own item",
			})
		case errors.Is(err, errs.ErrItemUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Item is not available",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking time slot",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Approve or reject booking
// @Description Item owner decides a WAITING booking
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param bookingId path string true "Booking ID"
// @Param approved query bool true "true to approve, false to reject"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [patch]
func (h *BookingHandler) Decide(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'approved' must be true or false",
		})
		return
	}

	view, err := h.bookingCommands.Decide(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, errs.ErrNotItemOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the item owner can decide a booking",
			})
		case errors.Is(err, errs.ErrBookingAlreadyDecided):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Booking has already been decided",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking; visible only to its booker or the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [get]
func (h *BookingHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), userID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, errs.ErrBookingNoAccess):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Booking is visible only to its booker or the item owner",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Description List the user's bookings filtered by state
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	h.list(c, booking.AsBooker)
}

// @Summary List bookings on own items
// @Description List bookings on the user's items filtered by state
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/owner [get]
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	h.list(c, booking.AsOwner)
}

func (h *BookingHandler) list(c *gin.Context, perspective booking.Perspective) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	state := c.Query("state")
	filter, err := booking.ParseViewFilter(state)
	if err != nil {
		// The exact message is part of the public contract.
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown state: " + state,
		})
		return
	}

	views, err := h.bookingQueries.ListForUser(c.Request.Context(), perspective, userID, filter)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, errs.ErrNoItemsOwned):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "User owns no items",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}
