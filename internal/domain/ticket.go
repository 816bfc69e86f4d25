package domain

import (
	"strings"
	"time"
)

type TicketState string

const (
	TicketPending   TicketState = "pending"
	TicketAssigned  TicketState = "assigned"
	TicketFinalized TicketState = "finalized"
)

// MinDescriptionLen is the minimum trimmed length accepted at creation.
const MinDescriptionLen = 10

type UserRef struct {
	UserID      string `json:"user_id" firestore:"userId"`
	DisplayName string `json:"display_name" firestore:"displayName"`
}

func (u UserRef) IsZero() bool { return u.UserID == "" }

type LatLng struct {
	Lat float64 `json:"lat" validate:"lat" firestore:"lat"`
	Lng float64 `json:"lng" validate:"lng" firestore:"lng"`
}

func (l LatLng) InRange() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// RescueTicket is the shared record of a single reported rescue case.
// It moves pending -> assigned -> finalized, only in that order, and the
// helper is set exactly once, on the claim.
type RescueTicket struct {
	ID               string      `json:"id" firestore:"-"`
	Description      string      `json:"description" firestore:"description"`
	Location         LatLng      `json:"location" firestore:"location"`
	State            TicketState `json:"state" firestore:"state"`
	Reporter         UserRef     `json:"reporter" firestore:"reporter"`
	Helper           *UserRef    `json:"helper,omitempty" firestore:"helper"`
	CreatedAt        time.Time   `json:"created_at" firestore:"createdAt"`
	AssignedAt       *time.Time  `json:"assigned_at,omitempty" firestore:"assignedAt"`
	FinalizedAt      *time.Time  `json:"finalized_at,omitempty" firestore:"finalizedAt"`
	EvidencePhotoRef string      `json:"evidence_photo_ref,omitempty" firestore:"evidencePhotoRef"`
	FinalComment     string      `json:"final_comment,omitempty" firestore:"finalComment"`
}

func (t *RescueTicket) HelperIs(userID string) bool {
	return t.Helper != nil && t.Helper.UserID == userID
}

func (t *RescueTicket) InvolvesUser(userID string) bool {
	return t.Reporter.UserID == userID || t.HelperIs(userID)
}

// RelevantAt is the timestamp used to order the Mine view:
// finalizedAt over assignedAt over createdAt.
func (t *RescueTicket) RelevantAt() time.Time {
	if t.FinalizedAt != nil {
		return *t.FinalizedAt
	}
	if t.AssignedAt != nil {
		return *t.AssignedAt
	}
	return t.CreatedAt
}

func ValidDescription(s string) bool {
	return len(strings.TrimSpace(s)) >= MinDescriptionLen
}
