package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-ticketing-service/service"
	"github.com/tnqbao/gau-ticketing-service/utils"
)

// respondError maps service error kinds to status codes. message is used for
// the log line and the body of unexpected failures.
func (ctrl *Controller) respondError(c *gin.Context, err error, component, message string) {
	ctx := c.Request.Context()

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		ctrl.Logger.WarningWithContextf(ctx, "[%s] Validation failed: %v", component, err)
		utils.JSONValidation(c, validationErr.Fields)
	case errors.Is(err, service.ErrNotFound):
		ctrl.Logger.WarningWithContextf(ctx, "[%s] %s", component, err.Error())
		utils.JSON404(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		ctrl.Logger.WarningWithContextf(ctx, "[%s] %s", component, err.Error())
		utils.JSON409(c, err.Error())
	case errors.Is(err, service.ErrTransport):
		ctrl.Logger.ErrorWithContextf(ctx, err, "[%s] %s: %v", component, message, err)
		utils.JSON502(c, message)
	default:
		ctrl.Logger.ErrorWithContextf(ctx, err, "[%s] %s: %v", component, message, err)
		utils.JSON500(c, message)
	}
}

// parseID reads the :id path parameter, writing a 400 when it is not a positive integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil || id == 0 {
		utils.JSON400(c, "Invalid id: "+c.Param("id"))
		return 0, false
	}
	return uint(id), true
}
