package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-ticketing-service/http/controller/dto"
	"github.com/tnqbao/gau-ticketing-service/utils"
)

func (ctrl *Controller) CreateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.EventRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Logger.ErrorWithContextf(ctx, err, "[Event] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	event, err := ctrl.Events.Create(ctx, req.Fields())
	if err != nil {
		ctrl.respondError(c, err, "Event", "Failed to create event")
		return
	}

	utils.JSON201(c, event)
}

func (ctrl *Controller) ListEvents(c *gin.Context) {
	events, err := ctrl.Events.List(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Event", "Failed to list events")
		return
	}

	utils.JSON200(c, events)
}

func (ctrl *Controller) GetEventByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	event, err := ctrl.Events.GetByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Event", "Failed to get event")
		return
	}

	utils.JSON200(c, event)
}

func (ctrl *Controller) UpdateEvent(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.EventRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Logger.ErrorWithContextf(ctx, err, "[Event] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	event, err := ctrl.Events.Update(ctx, id, req.Fields())
	if err != nil {
		ctrl.respondError(c, err, "Event", "Failed to update event")
		return
	}

	utils.JSON200(c, event)
}

func (ctrl *Controller) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.Events.Delete(c.Request.Context(), id); err != nil {
		ctrl.respondError(c, err, "Event", "Failed to delete event")
		return
	}

	utils.Text200(c, "Event Deleted Successfully.")
}
