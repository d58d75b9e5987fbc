package service

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tnqbao/gau-ticketing-service/entity"
)

const (
	MirrorPrefix    = "tickets/"
	mirrorKeyPrefix = MirrorPrefix + "Ticket_"
	mirrorKeySuffix = ".json"
)

// MirrorKey returns the object-store key holding the mirror blob of ticket id.
func MirrorKey(id uint) string {
	return fmt.Sprintf("%s%d%s", mirrorKeyPrefix, id, mirrorKeySuffix)
}

type encodedTicket struct {
	ID    uint        `json:"id"`
	Event string      `json:"event"`
	Seat  string      `json:"seat"`
	Price json.Number `json:"price"`
}

type decodedTicket struct {
	ID    *uint            `json:"id"`
	Event *string          `json:"event"`
	Seat  *string          `json:"seat"`
	Price *decimal.Decimal `json:"price"`
}

// EncodeTicket writes the canonical mirror blob of t. The price is emitted as a
// JSON number in its exact decimal form.
func EncodeTicket(t entity.Ticket) ([]byte, error) {
	return json.Marshal(encodedTicket{
		ID:    t.ID,
		Event: t.Event,
		Seat:  t.Seat,
		Price: json.Number(t.Price.String()),
	})
}

// DecodeTicket parses a mirror blob. All four fields must be present and non-null.
func DecodeTicket(data []byte) (entity.Ticket, error) {
	var blob decodedTicket
	if err := json.Unmarshal(data, &blob); err != nil {
		return entity.Ticket{}, &DecodeError{Reason: "malformed blob", Err: err}
	}

	switch {
	case blob.ID == nil:
		return entity.Ticket{}, &DecodeError{Reason: "missing field id"}
	case blob.Event == nil:
		return entity.Ticket{}, &DecodeError{Reason: "missing field event"}
	case blob.Seat == nil:
		return entity.Ticket{}, &DecodeError{Reason: "missing field seat"}
	case blob.Price == nil:
		return entity.Ticket{}, &DecodeError{Reason: "missing field price"}
	}

	return entity.Ticket{
		ID:    *blob.ID,
		Event: *blob.Event,
		Seat:  *blob.Seat,
		Price: *blob.Price,
	}, nil
}
