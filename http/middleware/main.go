package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-ticketing-service/http/controller"
)

type Middlewares struct {
	CORSMiddleware          gin.HandlerFunc
	AuthMiddleware          gin.HandlerFunc
	RequestIDMiddleware     gin.HandlerFunc
	RequestLoggerMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	cors, err := CORSMiddleware(ctrl.Config.EnvConfig)
	if err != nil {
		return nil, err
	}

	return &Middlewares{
		CORSMiddleware:          cors,
		AuthMiddleware:          AuthMiddleware(ctrl.Config.EnvConfig),
		RequestIDMiddleware:     RequestIDMiddleware(),
		RequestLoggerMiddleware: RequestLoggerMiddleware(ctrl.Logger),
	}, nil
}
