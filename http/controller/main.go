package controller

import (
	"context"

	"github.com/tnqbao/gau-ticketing-service/config"
	"github.com/tnqbao/gau-ticketing-service/infra"
	"github.com/tnqbao/gau-ticketing-service/repository"
	"github.com/tnqbao/gau-ticketing-service/service"
)

// MirrorResyncPublisher queues mirror repairs for the consumer process.
type MirrorResyncPublisher interface {
	PublishResync(ctx context.Context, ticketID uint, requestID string) error
	PublishResyncAll(ctx context.Context, requestID string) error
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Controller struct {
	Config   *config.Config
	Logger   service.Logger
	Tickets  *service.TicketService
	Bookings *service.BookingService
	Events   *service.EventService
	Health   HealthChecker

	// Resync is nil when RabbitMQ is unavailable; resync then runs inline.
	Resync MirrorResyncPublisher
}

func NewController(cfg *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	tickets := service.NewTicketService(repo.TicketRepo, infra.ObjectStore, infra.Logger,
		service.WithMeter(infra.Telemetry.Meter()),
		service.WithTracer(infra.Telemetry.Tracer()),
	)

	var bookingOpts []service.BookingOption
	var resync MirrorResyncPublisher
	if infra.Produce != nil {
		bookingOpts = append(bookingOpts, service.WithBookingNotifier(infra.Produce.BookingService))
		resync = infra.Produce.MirrorService
	}
	bookings := service.NewBookingService(repo.BookingRepo, repo.TicketRepo, infra.Logger, bookingOpts...)

	var eventOpts []service.EventOption
	if infra.Redis != nil {
		eventOpts = append(eventOpts, service.WithEventCache(infra.Redis, cfg.EnvConfig.Redis.EventCacheTTL))
	}
	events := service.NewEventService(repo.EventRepo, infra.Logger, eventOpts...)

	return &Controller{
		Config:   cfg,
		Logger:   infra.Logger,
		Tickets:  tickets,
		Bookings: bookings,
		Events:   events,
		Health:   repo,
		Resync:   resync,
	}
}
