package domain

import "time"

type TicketEventType string

const (
	EventTicketCreated   TicketEventType = "ticket.created"
	EventTicketClaimed   TicketEventType = "ticket.claimed"
	EventTicketFinalized TicketEventType = "ticket.finalized"
)

// TicketEvent is the outbound integration record queued on every lifecycle
// transition and delivered by the event sender worker.
type TicketEvent struct {
	Type       TicketEventType `json:"type"`
	TicketID   string          `json:"ticket_id"`
	Actor      UserRef         `json:"actor"`
	State      TicketState     `json:"state"`
	OccurredAt time.Time       `json:"occurred_at"`
}
