package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-ticketing-service/http/controller/dto"
	"github.com/tnqbao/gau-ticketing-service/utils"
)

func (ctrl *Controller) GetMirroredTicketByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ticket, err := ctrl.Tickets.GetMirroredByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Mirror", "Failed to get ticket from mirror")
		return
	}

	utils.JSON200(c, dto.NewTicketResponse(ticket))
}

func (ctrl *Controller) ListMirroredTickets(c *gin.Context) {
	tickets, err := ctrl.Tickets.ListMirrored(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Mirror", "Failed to list tickets from mirror")
		return
	}

	utils.JSON200(c, dto.NewTicketListResponse(tickets))
}

// DeleteMirroredTicket always reports success; mirror deletes are best effort.
func (ctrl *Controller) DeleteMirroredTicket(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctrl.Tickets.DeleteMirrored(c.Request.Context(), id)
	utils.Text200(c, "Ticket Deleted Successfully From S3.")
}
