package dto

import "github.com/tnqbao/gau-ticketing-service/service"

type EventRequestDTO struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (r EventRequestDTO) Fields() service.EventFields {
	return service.EventFields{
		Name:     r.Name,
		Location: r.Location,
	}
}
