package service

import (
	"sort"
	"time"

	"pawguard/internal/domain"
)

// streakMaxGap is the longest pause between two finalized rescues that
// still counts as consecutive.
const streakMaxGap = 24 * time.Hour

// TicketSource is the read surface Impact folds over. The coordinator
// satisfies it from its in-memory projection.
type TicketSource interface {
	All() []domain.RescueTicket
}

// Impact derives per-user statistics from ticket history. Everything is
// a pure fold over the source snapshot; nothing is stored.
type Impact struct {
	source TicketSource
}

func NewImpact(source TicketSource) *Impact {
	return &Impact{source: source}
}

func (s *Impact) ImpactFor(userID string) domain.ImpactStats {
	return ComputeImpact(s.source.All(), userID)
}

// ComputeImpact folds the user's statistics out of a ticket snapshot.
// The score only ever grows with activity: every counted ticket adds a
// positive amount and nothing subtracts.
func ComputeImpact(tickets []domain.RescueTicket, userID string) domain.ImpactStats {
	var st domain.ImpactStats
	var totalMinutes float64
	var timedRescues int

	for _, t := range tickets {
		if !t.InvolvesUser(userID) {
			continue
		}
		st.Participations++
		if t.Reporter.UserID == userID {
			st.Reported++
		}
		if !t.HelperIs(userID) {
			st.ImpactScore += 5
			continue
		}

		st.Rescued++
		st.ImpactScore += 10
		if t.State != domain.TicketFinalized {
			continue
		}

		st.ImpactScore += 5
		if t.EvidencePhotoRef != "" {
			st.ImpactScore += 3
		}
		if t.FinalComment != "" {
			st.ImpactScore += 2
		}
		if m, ok := rescueMinutes(t); ok {
			totalMinutes += m
			timedRescues++
			if m < 120 {
				st.ImpactScore += 3
			}
		}
	}

	if st.Rescued > 0 {
		st.CompletionRate = float64(countFinalizedBy(tickets, userID)) / float64(st.Rescued)
	}
	if timedRescues > 0 {
		st.AverageDurationMinutes = totalMinutes / float64(timedRescues)
	}
	st.Streak = computeStreak(tickets, userID)
	return st
}

// rescueMinutes is the helper's time on the ticket, claim to close.
// Falls back to creation time for records that predate claim timestamps.
func rescueMinutes(t domain.RescueTicket) (float64, bool) {
	if t.FinalizedAt == nil {
		return 0, false
	}
	start := t.CreatedAt
	if t.AssignedAt != nil {
		start = *t.AssignedAt
	}
	d := t.FinalizedAt.Sub(start)
	if d < 0 {
		return 0, false
	}
	return d.Minutes(), true
}

func countFinalizedBy(tickets []domain.RescueTicket, userID string) int {
	n := 0
	for _, t := range tickets {
		if t.HelperIs(userID) && t.State == domain.TicketFinalized {
			n++
		}
	}
	return n
}

// computeStreak counts the user's most recent run of finalized rescues
// with no more than streakMaxGap between consecutive closes.
func computeStreak(tickets []domain.RescueTicket, userID string) int {
	var closes []time.Time
	for _, t := range tickets {
		if t.HelperIs(userID) && t.State == domain.TicketFinalized && t.FinalizedAt != nil {
			closes = append(closes, *t.FinalizedAt)
		}
	}
	if len(closes) == 0 {
		return 0
	}
	sort.Slice(closes, func(i, j int) bool { return closes[i].After(closes[j]) })

	streak := 1
	for i := 1; i < len(closes); i++ {
		if closes[i-1].Sub(closes[i]) > streakMaxGap {
			break
		}
		streak++
	}
	return streak
}
