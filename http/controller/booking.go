package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-ticketing-service/http/controller/dto"
	"github.com/tnqbao/gau-ticketing-service/service"
	"github.com/tnqbao/gau-ticketing-service/utils"
)

func (ctrl *Controller) CreateBooking(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BookingRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Logger.ErrorWithContextf(ctx, err, "[Booking] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	ctrl.Logger.InfoWithContextf(ctx, "[Booking] Request to create booking: ticket=%d user=%q", req.TicketID(), req.User)

	booking, err := ctrl.Bookings.Create(ctx, req.TicketID(), req.User)
	if err != nil {
		ctrl.respondError(c, err, "Booking", "Failed to create booking")
		return
	}

	utils.JSON201(c, dto.NewBookingResponse(booking))
}

func (ctrl *Controller) ListBookings(c *gin.Context) {
	bookings, err := ctrl.Bookings.List(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Booking", "Failed to list bookings")
		return
	}

	utils.JSON200(c, dto.NewBookingListResponse(bookings))
}

func (ctrl *Controller) GetBookingByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, found, err := ctrl.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Booking", "Failed to get booking")
		return
	}
	if !found {
		ctrl.respondError(c, service.NotFound("Booking not found for this id :: %d", id), "Booking", "")
		return
	}

	utils.JSON200(c, dto.NewBookingResponse(booking))
}

func (ctrl *Controller) ListBookingsByUser(c *gin.Context) {
	bookings, err := ctrl.Bookings.ListByUser(c.Request.Context(), c.Param("user"))
	if err != nil {
		ctrl.respondError(c, err, "Booking", "Failed to list bookings")
		return
	}

	utils.JSON200(c, dto.NewBookingListResponse(bookings))
}
