package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-ticketing-service/entity"
)

func TestMirrorKey(t *testing.T) {
	assert.Equal(t, "tickets/Ticket_1.json", MirrorKey(1))
	assert.Equal(t, "tickets/Ticket_1234567.json", MirrorKey(1234567))
}

func TestEncodeTicket(t *testing.T) {
	data, err := EncodeTicket(entity.Ticket{
		ID:    7,
		Event: "Concert",
		Seat:  "A1",
		Price: decimal.RequireFromString("100.50"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"event":"Concert","seat":"A1","price":100.5}`, string(data))
}

func TestDecodeTicket(t *testing.T) {
	t.Run("number price", func(t *testing.T) {
		got, err := DecodeTicket([]byte(`{"id":3,"event":"Opera","seat":"B12","price":19.99}`))
		require.NoError(t, err)
		assert.Equal(t, uint(3), got.ID)
		assert.Equal(t, "Opera", got.Event)
		assert.Equal(t, "B12", got.Seat)
		assert.True(t, decimal.RequireFromString("19.99").Equal(got.Price))
	})

	t.Run("string price", func(t *testing.T) {
		got, err := DecodeTicket([]byte(`{"id":3,"event":"Opera","seat":"B1","price":"0.10"}`))
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("0.1").Equal(got.Price))
	})

	t.Run("round trip keeps exact price", func(t *testing.T) {
		in := entity.Ticket{ID: 9, Event: "Jazz Night", Seat: "C3", Price: decimal.RequireFromString("12345678901234.123456789")}
		data, err := EncodeTicket(in)
		require.NoError(t, err)

		out, err := DecodeTicket(data)
		require.NoError(t, err)
		assert.Equal(t, in.ID, out.ID)
		assert.True(t, in.Price.Equal(out.Price), "price %s != %s", in.Price, out.Price)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeTicket([]byte(`{"id":3,`))
		var decErr *DecodeError
		require.True(t, errors.As(err, &decErr))
		assert.Equal(t, "malformed blob", decErr.Reason)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := DecodeTicket([]byte(`{"id":3,"event":"Opera","seat":"B1"}`))
		var decErr *DecodeError
		require.True(t, errors.As(err, &decErr))
		assert.Equal(t, "missing field price", decErr.Reason)
	})

	t.Run("null field", func(t *testing.T) {
		_, err := DecodeTicket([]byte(`{"id":3,"event":null,"seat":"B1","price":1}`))
		var decErr *DecodeError
		require.True(t, errors.As(err, &decErr))
		assert.Equal(t, "missing field event", decErr.Reason)
	})
}
