package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-ticketing-service/infra"
	"github.com/tnqbao/gau-ticketing-service/service"
	"github.com/tnqbao/gau-ticketing-service/utils"
)

// ResyncMirrorByID queues a rewrite of one ticket's mirror blob from its
// relational record. Without a message broker the rewrite runs inline.
func (ctrl *Controller) ResyncMirrorByID(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	if ctrl.Resync == nil {
		if err := ctrl.Tickets.Remirror(ctx, id); err != nil {
			ctrl.respondError(c, err, "Mirror", "Failed to resync ticket mirror")
			return
		}
		utils.JSON200(c, gin.H{"message": "Ticket mirror resynced", "ticket_id": id})
		return
	}

	_, found, err := ctrl.Tickets.GetByID(ctx, id)
	if err != nil {
		ctrl.respondError(c, err, "Mirror", "Failed to get ticket")
		return
	}
	if !found {
		ctrl.respondError(c, service.NotFound("Ticket not found with id: %d", id), "Mirror", "")
		return
	}

	if err := ctrl.Resync.PublishResync(ctx, id, infra.RequestIDFromContext(ctx)); err != nil {
		ctrl.respondError(c, err, "Mirror", "Failed to queue mirror resync")
		return
	}

	ctrl.Logger.InfoWithContextf(ctx, "[Mirror] Queued resync for ticket %d", id)
	utils.JSON202(c, gin.H{"message": "Mirror resync queued", "ticket_id": id})
}

func (ctrl *Controller) ResyncMirror(c *gin.Context) {
	ctx := c.Request.Context()

	if ctrl.Resync == nil {
		written, err := ctrl.Tickets.RemirrorAll(ctx)
		if err != nil {
			ctrl.respondError(c, err, "Mirror", "Failed to resync ticket mirrors")
			return
		}
		utils.JSON200(c, gin.H{"message": "Ticket mirrors resynced", "count": written})
		return
	}

	if err := ctrl.Resync.PublishResyncAll(ctx, infra.RequestIDFromContext(ctx)); err != nil {
		ctrl.respondError(c, err, "Mirror", "Failed to queue mirror resync")
		return
	}

	ctrl.Logger.InfoWithContextf(ctx, "[Mirror] Queued resync for all tickets")
	utils.JSON202(c, gin.H{"message": "Mirror resync queued"})
}
