package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pawguard/internal/domain"
	"pawguard/internal/storage"
	"pawguard/pkg/e"
)

// notifyChannel carries a ping whenever the collection changes; the
// subscriber re-reads the full collection on every ping.
const notifyChannel = "rescue_tickets_changed"

const ticketColumns = `
	id, description, lat, lng, state,
	reporter_id, reporter_name, helper_id, helper_name,
	created_at, assigned_at, finalized_at, evidence_photo_ref, final_comment
`

func (s *Store) Create(ctx context.Context, t *domain.RescueTicket) (string, error) {
	const op = "postgres.Store.Create"

	if t == nil {
		return "", fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.State == "" {
		t.State = domain.TicketPending
	}

	const query = `
		INSERT INTO rescue_tickets
			(id, description, lat, lng, state, reporter_id, reporter_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.Pool.Exec(ctx, query,
		t.ID,
		t.Description,
		t.Location.Lat,
		t.Location.Lng,
		t.State,
		t.Reporter.UserID,
		t.Reporter.DisplayName,
		t.CreatedAt,
	)
	if err != nil {
		s.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return "", e.WrapError(ctx, op, err)
	}

	s.notify(ctx)
	return t.ID, nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.RescueTicket, error) {
	const op = "postgres.Store.Get"

	query := `SELECT ` + ticketColumns + ` FROM rescue_tickets WHERE id = $1`

	t, err := scanTicket(s.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		s.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id))
		return nil, e.WrapError(ctx, op, err)
	}

	return t, nil
}

func (s *Store) List(ctx context.Context) ([]domain.RescueTicket, error) {
	const op = "postgres.Store.List"

	query := `SELECT ` + ticketColumns + ` FROM rescue_tickets ORDER BY created_at DESC`

	rows, err := s.Pool.Query(ctx, query)
	if err != nil {
		s.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	tickets := make([]domain.RescueTicket, 0, 32)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			s.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		tickets = append(tickets, *t)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return tickets, nil
}

// Update performs the conditional write. The precondition lands in the
// WHERE clause, so the check and the write are a single atomic statement;
// losing writers see zero affected rows.
func (s *Store) Update(ctx context.Context, id string, upd storage.TicketUpdate, pre *storage.Precondition) (*domain.RescueTicket, error) {
	const op = "postgres.Store.Update"

	set := make([]string, 0, 6)
	args := []any{id}
	next := 2

	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, next))
		args = append(args, v)
		next++
	}

	if upd.State != nil {
		add("state", *upd.State)
	}
	if upd.Helper != nil {
		add("helper_id", upd.Helper.UserID)
		add("helper_name", upd.Helper.DisplayName)
	}
	if upd.AssignedAt != nil {
		add("assigned_at", *upd.AssignedAt)
	}
	if upd.FinalizedAt != nil {
		add("finalized_at", *upd.FinalizedAt)
	}
	if upd.EvidencePhotoRef != nil {
		add("evidence_photo_ref", *upd.EvidencePhotoRef)
	}
	if upd.FinalComment != nil {
		add("final_comment", *upd.FinalComment)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%s: empty update: %w", op, e.ErrInvalidInput)
	}

	where := []string{"id = $1"}
	if pre != nil {
		if pre.State != nil {
			where = append(where, fmt.Sprintf("state = $%d", next))
			args = append(args, *pre.State)
			next++
		}
		if pre.NotState != nil {
			where = append(where, fmt.Sprintf("state <> $%d", next))
			args = append(args, *pre.NotState)
			next++
		}
		if pre.HelperID != "" {
			where = append(where, fmt.Sprintf("helper_id = $%d", next))
			args = append(args, pre.HelperID)
			next++
		}
	}

	query := `UPDATE rescue_tickets SET ` + strings.Join(set, ", ") +
		` WHERE ` + strings.Join(where, " AND ") +
		` RETURNING ` + ticketColumns

	t, err := scanTicket(s.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing ticket from a lost race.
			if _, getErr := s.Get(ctx, id); errors.Is(getErr, e.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
			}
			return nil, fmt.Errorf("%s: %w", op, e.ErrPreconditionFailed)
		}
		s.logger.Error("db update failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id))
		return nil, e.WrapError(ctx, op, err)
	}

	s.notify(ctx)
	return t, nil
}

func (s *Store) notify(ctx context.Context) {
	if _, err := s.Pool.Exec(ctx, `SELECT pg_notify($1, '')`, notifyChannel); err != nil {
		s.logger.Warn("pg_notify failed", slog.Any("error", err))
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.RescueTicket, error) {
	var (
		t          domain.RescueTicket
		helperID   *string
		helperName *string
		evidence   *string
		comment    *string
	)

	err := row.Scan(
		&t.ID,
		&t.Description,
		&t.Location.Lat,
		&t.Location.Lng,
		&t.State,
		&t.Reporter.UserID,
		&t.Reporter.DisplayName,
		&helperID,
		&helperName,
		&t.CreatedAt,
		&t.AssignedAt,
		&t.FinalizedAt,
		&evidence,
		&comment,
	)
	if err != nil {
		return nil, err
	}

	if helperID != nil {
		name := ""
		if helperName != nil {
			name = *helperName
		}
		t.Helper = &domain.UserRef{UserID: *helperID, DisplayName: name}
	}
	if evidence != nil {
		t.EvidencePhotoRef = *evidence
	}
	if comment != nil {
		t.FinalComment = *comment
	}

	return &t, nil
}
