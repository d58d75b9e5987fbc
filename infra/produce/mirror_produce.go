package produce

import (
	"context"
	"time"
)

const (
	MirrorResyncQueue      = "ticket.mirror.resync"
	MirrorResyncRoutingKey = "ticket.mirror.resync"
)

// MirrorResyncMessage asks the mirror worker to rewrite one ticket's blob, or
// every blob when All is set.
type MirrorResyncMessage struct {
	TicketID  uint   `json:"ticket_id,omitempty"`
	All       bool   `json:"all,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type MirrorService struct {
	channel Channel
}

func InitMirrorService(channel Channel) (*MirrorService, error) {
	if err := DeclareQueue(channel, MirrorResyncQueue, MirrorResyncRoutingKey); err != nil {
		return nil, err
	}
	return &MirrorService{channel: channel}, nil
}

func (s *MirrorService) PublishResync(ctx context.Context, ticketID uint, requestID string) error {
	return publishJSON(ctx, s.channel, MirrorResyncRoutingKey, MirrorResyncMessage{
		TicketID:  ticketID,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	})
}

func (s *MirrorService) PublishResyncAll(ctx context.Context, requestID string) error {
	return publishJSON(ctx, s.channel, MirrorResyncRoutingKey, MirrorResyncMessage{
		All:       true,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	})
}
