package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-ticketing-service/http/controller/dto"
	"github.com/tnqbao/gau-ticketing-service/service"
	"github.com/tnqbao/gau-ticketing-service/utils"
)

func (ctrl *Controller) CreateTicket(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.TicketRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Logger.ErrorWithContextf(ctx, err, "[Ticket] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	ctrl.Logger.InfoWithContextf(ctx, "[Ticket] Request to create ticket: event=%q seat=%q", req.Event, req.Seat)

	ticket, err := ctrl.Tickets.Create(ctx, req.Fields())
	if err != nil {
		ctrl.respondError(c, err, "Ticket", "Failed to create ticket")
		return
	}

	utils.JSON201(c, dto.NewTicketResponse(ticket))
}

func (ctrl *Controller) ListTickets(c *gin.Context) {
	tickets, err := ctrl.Tickets.List(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Ticket", "Failed to list tickets")
		return
	}

	utils.JSON200(c, dto.NewTicketListResponse(tickets))
}

func (ctrl *Controller) GetTicketByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ticket, found, err := ctrl.Tickets.GetByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Ticket", "Failed to get ticket")
		return
	}
	if !found {
		ctrl.respondError(c, service.NotFound("Ticket not found with id: %d", id), "Ticket", "")
		return
	}

	utils.JSON200(c, dto.NewTicketResponse(ticket))
}

func (ctrl *Controller) UpdateTicket(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.TicketRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Logger.ErrorWithContextf(ctx, err, "[Ticket] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	ticket, err := ctrl.Tickets.Update(ctx, id, req.Fields())
	if err != nil {
		ctrl.respondError(c, err, "Ticket", "Failed to update ticket")
		return
	}

	utils.JSON200(c, dto.NewTicketResponse(ticket))
}

func (ctrl *Controller) DeleteTicket(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.Tickets.Delete(c.Request.Context(), id); err != nil {
		ctrl.respondError(c, err, "Ticket", "Failed to delete ticket")
		return
	}

	utils.Text200(c, "Ticket Deleted Successfully.")
}
