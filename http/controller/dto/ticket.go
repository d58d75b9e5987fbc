package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/tnqbao/gau-ticketing-service/entity"
	"github.com/tnqbao/gau-ticketing-service/service"
)

// TicketRequestDTO carries no binding tags; service.TicketService validates it.
type TicketRequestDTO struct {
	Event string           `json:"event"`
	Seat  string           `json:"seat"`
	Price *decimal.Decimal `json:"price"`
}

func (r TicketRequestDTO) Fields() service.TicketFields {
	return service.TicketFields{
		Event: r.Event,
		Seat:  r.Seat,
		Price: r.Price,
	}
}

type TicketResponseDTO struct {
	ID    uint        `json:"id"`
	Event string      `json:"event"`
	Seat  string      `json:"seat"`
	Price json.Number `json:"price"`
}

func NewTicketResponse(t entity.Ticket) TicketResponseDTO {
	return TicketResponseDTO{
		ID:    t.ID,
		Event: t.Event,
		Seat:  t.Seat,
		Price: json.Number(t.Price.String()),
	}
}

func NewTicketListResponse(tickets []entity.Ticket) []TicketResponseDTO {
	out := make([]TicketResponseDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketResponse(t))
	}
	return out
}
