package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-ticketing-service/utils"
)

func (ctrl *Controller) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()
	if err := ctrl.Health.Ping(ctx); err != nil {
		ctrl.Logger.ErrorWithContextf(ctx, err, "[Health] Database ping failed: %v", err)
		utils.JSON503(c, "Database unavailable")
		return
	}
	utils.JSON200(c, gin.H{"status": "ok"})
}
