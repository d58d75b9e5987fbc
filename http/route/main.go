package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-ticketing-service/http/controller"
	middlewares "github.com/tnqbao/gau-ticketing-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) (*gin.Engine, error) {
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middles.RequestIDMiddleware,
		middles.RequestLoggerMiddleware,
		middles.CORSMiddleware,
	)

	r.GET("/health", ctrl.CheckHealth)

	apiRoutes := r.Group("/api")
	{
		ticketRoutes := apiRoutes.Group("/tickets")
		{
			ticketRoutes.POST("", ctrl.CreateTicket)
			ticketRoutes.GET("", ctrl.ListTickets)
			ticketRoutes.GET("/:id", ctrl.GetTicketByID)
			ticketRoutes.PUT("/:id", ctrl.UpdateTicket)
			ticketRoutes.DELETE("/:id", ctrl.DeleteTicket)

			// Mirror routes keep the S3 segment for existing clients
			ticketRoutes.GET("/S3", ctrl.ListMirroredTickets)
			ticketRoutes.GET("/S3/:id", ctrl.GetMirroredTicketByID)
			ticketRoutes.DELETE("/S3/:id", ctrl.DeleteMirroredTicket)
		}

		bookingRoutes := apiRoutes.Group("/bookings")
		{
			bookingRoutes.POST("", ctrl.CreateBooking)
			bookingRoutes.GET("", ctrl.ListBookings)
			bookingRoutes.GET("/:id", ctrl.GetBookingByID)
			bookingRoutes.GET("/user/:user", ctrl.ListBookingsByUser)
		}

		eventRoutes := apiRoutes.Group("/events")
		{
			eventRoutes.POST("", ctrl.CreateEvent)
			eventRoutes.GET("", ctrl.ListEvents)
			eventRoutes.GET("/:id", ctrl.GetEventByID)
			eventRoutes.PUT("/:id", ctrl.UpdateEvent)
			eventRoutes.DELETE("/:id", ctrl.DeleteEvent)
		}

		adminRoutes := apiRoutes.Group("/admin")
		{
			adminRoutes.Use(middles.AuthMiddleware)

			adminRoutes.POST("/mirror/resync", ctrl.ResyncMirror)
			adminRoutes.POST("/mirror/resync/:id", ctrl.ResyncMirrorByID)
		}
	}
	return r, nil
}
