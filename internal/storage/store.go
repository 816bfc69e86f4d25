// Package storage defines the consumed interface of the shared rescue
// ticket collection. The collection is multi-writer, multi-reader: no
// client holds a lock, and every state transition goes through a
// conditional update so that exactly one concurrent writer wins.
package storage

import (
	"context"
	"time"

	"pawguard/internal/domain"
)

// Precondition is the compare-and-set guard for Update. A nil precondition
// means an unconditional field write, which is only acceptable for data
// that is not part of the state machine.
type Precondition struct {
	// State requires the current state to equal this value.
	State *domain.TicketState
	// NotState requires the current state to differ from this value.
	NotState *domain.TicketState
	// HelperID requires the assigned helper to be this user.
	HelperID string
}

// TicketUpdate carries the fields a transition writes. Nil fields are left
// untouched; a transition either lands all of its fields or none.
type TicketUpdate struct {
	State            *domain.TicketState
	Helper           *domain.UserRef
	AssignedAt       *time.Time
	FinalizedAt      *time.Time
	EvidencePhotoRef *string
	FinalComment     *string
}

// TicketStore is the external realtime collection holding all rescue
// tickets. Update must return e.ErrPreconditionFailed when the guard does
// not hold and e.ErrNotFound for an unknown id. Subscribe streams the full
// current collection on every change; consumers diff locally.
//
//go:generate mockgen -source=store.go -destination=mocks/mock.go
type TicketStore interface {
	Create(ctx context.Context, t *domain.RescueTicket) (string, error)
	Get(ctx context.Context, id string) (*domain.RescueTicket, error)
	List(ctx context.Context) ([]domain.RescueTicket, error)
	Update(ctx context.Context, id string, upd TicketUpdate, pre *Precondition) (*domain.RescueTicket, error)
	Subscribe(ctx context.Context) (<-chan []domain.RescueTicket, error)
}

// Check evaluates the precondition against a current ticket.
func (p *Precondition) Check(t *domain.RescueTicket) bool {
	if p == nil {
		return true
	}
	if p.State != nil && t.State != *p.State {
		return false
	}
	if p.NotState != nil && t.State == *p.NotState {
		return false
	}
	if p.HelperID != "" && !t.HelperIs(p.HelperID) {
		return false
	}
	return true
}

// Apply writes the update onto a ticket in place.
func (u TicketUpdate) Apply(t *domain.RescueTicket) {
	if u.State != nil {
		t.State = *u.State
	}
	if u.Helper != nil {
		t.Helper = u.Helper
	}
	if u.AssignedAt != nil {
		t.AssignedAt = u.AssignedAt
	}
	if u.FinalizedAt != nil {
		t.FinalizedAt = u.FinalizedAt
	}
	if u.EvidencePhotoRef != nil {
		t.EvidencePhotoRef = *u.EvidencePhotoRef
	}
	if u.FinalComment != nil {
		t.FinalComment = *u.FinalComment
	}
}
