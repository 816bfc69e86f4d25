package service_test

import (
	"math"
	"testing"
	"time"

	"pawguard/internal/domain"
	"pawguard/internal/service"
)

func finalizedBy(helper string, claimed, closed time.Time, photo, comment string) domain.RescueTicket {
	return domain.RescueTicket{
		ID:               "t-" + closed.Format("150405"),
		Description:      "Injured dog near the plaza, limping on one leg",
		State:            domain.TicketFinalized,
		Reporter:         domain.UserRef{UserID: "someone-else"},
		Helper:           &domain.UserRef{UserID: helper},
		CreatedAt:        claimed.Add(-10 * time.Minute),
		AssignedAt:       &claimed,
		FinalizedAt:      &closed,
		EvidencePhotoRef: photo,
		FinalComment:     comment,
	}
}

func TestComputeImpact_Empty(t *testing.T) {
	t.Parallel()

	got := service.ComputeImpact(nil, "u1")
	if got != (domain.ImpactStats{}) {
		t.Fatalf("empty history: got %+v", got)
	}
}

func TestComputeImpact_Counts(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tickets := []domain.RescueTicket{
		// Reported by u1, rescued by someone else.
		{
			ID: "t1", State: domain.TicketFinalized,
			Reporter:    domain.UserRef{UserID: "u1"},
			Helper:      &domain.UserRef{UserID: "h9"},
			CreatedAt:   base,
			FinalizedAt: timePtr(base.Add(time.Hour)),
		},
		// Rescued by u1, fast, fully documented.
		finalizedBy("u1", base, base.Add(50*time.Minute), "https://cdn.example/p1.jpg", "Reunited with owner"),
		// Claimed by u1, still in progress.
		{
			ID: "t3", State: domain.TicketAssigned,
			Reporter:   domain.UserRef{UserID: "u2"},
			Helper:     &domain.UserRef{UserID: "u1"},
			CreatedAt:  base,
			AssignedAt: timePtr(base.Add(time.Minute)),
		},
		// Unrelated to u1.
		{
			ID: "t4", State: domain.TicketPending,
			Reporter:  domain.UserRef{UserID: "u3"},
			CreatedAt: base,
		},
	}

	got := service.ComputeImpact(tickets, "u1")

	if got.Participations != 3 {
		t.Fatalf("participations: got %d want 3", got.Participations)
	}
	if got.Reported != 1 {
		t.Fatalf("reported: got %d want 1", got.Reported)
	}
	if got.Rescued != 2 {
		t.Fatalf("rescued: got %d want 2", got.Rescued)
	}
	if got.CompletionRate != 0.5 {
		t.Fatalf("completion rate: got %v want 0.5", got.CompletionRate)
	}
	if math.Abs(got.AverageDurationMinutes-50) > 1e-9 {
		t.Fatalf("average duration: got %v want 50", got.AverageDurationMinutes)
	}
	// t1 as reporter: 5. t2 as helper, finalized, photo, comment, <2h:
	// 10+5+3+2+3 = 23. t3 as helper in progress: 10.
	if got.ImpactScore != 38 {
		t.Fatalf("score: got %d want 38", got.ImpactScore)
	}
}

// The score never shrinks when activity is added.
func TestComputeImpact_ScoreMonotonic(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var tickets []domain.RescueTicket
	prev := 0

	for i := 0; i < 10; i++ {
		claimed := base.Add(time.Duration(i) * time.Hour)
		tickets = append(tickets, finalizedBy("u1", claimed, claimed.Add(30*time.Minute), "https://cdn.example/p.jpg", ""))

		got := service.ComputeImpact(tickets, "u1").ImpactScore
		if got <= prev {
			t.Fatalf("score did not grow: %d after %d tickets, was %d", got, i+1, prev)
		}
		prev = got
	}
}

func TestComputeImpact_Streak(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		closes []time.Duration // offsets back from base
		want   int
	}{
		{"no rescues", nil, 0},
		{"single", []time.Duration{0}, 1},
		{"three daily", []time.Duration{0, 20 * time.Hour, 40 * time.Hour}, 3},
		{"gap breaks the run", []time.Duration{0, 20 * time.Hour, 80 * time.Hour}, 2},
		{"old streak does not count", []time.Duration{0, 72 * time.Hour, 80 * time.Hour}, 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var tickets []domain.RescueTicket
			for _, back := range tc.closes {
				closed := base.Add(-back)
				tickets = append(tickets, finalizedBy("u1", closed.Add(-time.Hour), closed, "https://cdn.example/p.jpg", ""))
			}
			if got := service.ComputeImpact(tickets, "u1").Streak; got != tc.want {
				t.Fatalf("streak: got %d want %d", got, tc.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
