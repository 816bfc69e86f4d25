// Package firestore adapts the shared rescue collection onto Cloud
// Firestore. Preconditions are enforced inside a transaction: the current
// document is read, checked and written atomically, so a lost claim race
// surfaces as e.ErrPreconditionFailed instead of a silent overwrite.
package firestore

import (
	"context"
	"encoding/base64"
	"fmt"

	"log/slog"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pawguard/internal/config"
	"pawguard/internal/domain"
	"pawguard/internal/storage"
	"pawguard/pkg/e"
)

type Store struct {
	client     *firestore.Client
	collection string
	logger     *slog.Logger
}

func NewStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	const op = "storage.firestore.NewStore"

	var opts []option.ClientOption
	if cfg.Firestore.CredentialsB64 != "" {
		creds, err := base64.StdEncoding.DecodeString(cfg.Firestore.CredentialsB64)
		if err != nil {
			return nil, e.Wrap(op+": decode credentials", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firestore.ProjectID}, opts...)
	if err != nil {
		return nil, e.Wrap(op+": init app", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, e.Wrap(op+": init client", err)
	}
	logger.Info("connected to firestore", slog.String("project", cfg.Firestore.ProjectID))

	collection := cfg.Firestore.Collection
	if collection == "" {
		collection = "rescues"
	}

	return &Store{client: client, collection: collection, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Create(ctx context.Context, t *domain.RescueTicket) (string, error) {
	const op = "firestore.Store.Create"

	if t == nil {
		return "", fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	ref := s.client.Collection(s.collection).NewDoc()
	t.ID = ref.ID

	if _, err := ref.Set(ctx, t); err != nil {
		s.logger.Error("doc set failed", slog.String("op", op), slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, e.ErrInternal)
	}

	return ref.ID, nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.RescueTicket, error) {
	const op = "firestore.Store.Get"

	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		s.logger.Error("doc get failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id))
		return nil, fmt.Errorf("%s: %w", op, e.ErrInternal)
	}

	return decodeTicket(snap)
}

func (s *Store) List(ctx context.Context) ([]domain.RescueTicket, error) {
	const op = "firestore.Store.List"

	iter := s.client.Collection(s.collection).Documents(ctx)
	defer iter.Stop()

	tickets := make([]domain.RescueTicket, 0, 32)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			s.logger.Error("iterate failed", slog.String("op", op), slog.Any("error", err))
			return nil, fmt.Errorf("%s: %w", op, e.ErrInternal)
		}
		t, err := decodeTicket(snap)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}

	return tickets, nil
}

func (s *Store) Update(ctx context.Context, id string, upd storage.TicketUpdate, pre *storage.Precondition) (*domain.RescueTicket, error) {
	const op = "firestore.Store.Update"

	ref := s.client.Collection(s.collection).Doc(id)

	var updated *domain.RescueTicket
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return e.ErrNotFound
			}
			return err
		}

		current, err := decodeTicket(snap)
		if err != nil {
			return err
		}
		if !pre.Check(current) {
			return e.ErrPreconditionFailed
		}

		upd.Apply(current)
		updated = current

		return tx.Set(ref, current)
	})
	if err != nil {
		switch {
		case err == e.ErrNotFound || err == e.ErrPreconditionFailed:
			return nil, fmt.Errorf("%s: %w", op, err)
		default:
			s.logger.Error("transaction failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id))
			return nil, fmt.Errorf("%s: %w", op, e.ErrInternal)
		}
	}

	updated.ID = id
	return updated, nil
}

// Subscribe streams the full collection on every change via a Firestore
// snapshot listener. The channel closes when ctx is done.
func (s *Store) Subscribe(ctx context.Context) (<-chan []domain.RescueTicket, error) {
	ch := make(chan []domain.RescueTicket, 8)

	go func() {
		defer close(ch)

		snaps := s.client.Collection(s.collection).Snapshots(ctx)
		defer snaps.Stop()

		for {
			qs, err := snaps.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Error("snapshot listener failed", slog.Any("error", err))
				return
			}

			tickets := make([]domain.RescueTicket, 0, 32)
			for {
				doc, err := qs.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					s.logger.Error("snapshot document iterate failed", slog.Any("error", err))
					break
				}
				t, err := decodeTicket(doc)
				if err != nil {
					s.logger.Warn("skipping malformed ticket document", slog.String("id", doc.Ref.ID))
					continue
				}
				tickets = append(tickets, *t)
			}

			select {
			case ch <- tickets:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func decodeTicket(snap *firestore.DocumentSnapshot) (*domain.RescueTicket, error) {
	var t domain.RescueTicket
	if err := snap.DataTo(&t); err != nil {
		return nil, e.Wrap("firestore.decodeTicket", err)
	}
	t.ID = snap.Ref.ID
	return &t, nil
}
