package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/eventlane/eventlane/internal/domain"
	"github.com/eventlane/eventlane/internal/store"
	"github.com/eventlane/eventlane/pkg/idx"
	"github.com/eventlane/eventlane/pkg/slogx"
)

const (
	MinTitleLen = 1
	MaxTitleLen = 100
)

type EventService struct {
	Store store.Store
}

// EventParams is the cleaned-up event payload for create and update.
type EventParams struct {
	Title       string
	Description string
	Date        time.Time
	Category    string
}

// ListEvents returns events joined with their creators, optionally
// narrowed to a category name.
func (s *EventService) ListEvents(ctx context.Context, category string) ([]domain.EventWithCreator, error) {
	return s.Store.Events().ListEvents(ctx, strings.TrimSpace(category))
}

// GetEventByID fetches an event with its creator.
func (s *EventService) GetEventByID(ctx context.Context, id string) (domain.EventWithCreator, error) {
	ev, err := s.Store.Events().GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.EventWithCreator{}, ErrNotFound
		}
		return domain.EventWithCreator{}, err
	}
	return ev, nil
}

// CreateEvent validates the payload, checks the category exists and
// inserts the event owned by creatorID.
func (s *EventService) CreateEvent(ctx context.Context, creatorID string, p EventParams) (domain.EventWithCreator, error) {
	l := slogx.FromContext(ctx)

	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	if err := validateEvent(p); err != nil {
		return domain.EventWithCreator{}, err
	}

	if err := s.checkCategory(ctx, p.Category); err != nil {
		return domain.EventWithCreator{}, err
	}

	now := time.Now().UTC()
	e := domain.Event{
		ID:          idx.New().String(),
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		CreatedBy:   creatorID,
		Category:    p.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Events().CreateEvent(ctx, e); err != nil {
		return domain.EventWithCreator{}, err
	}

	l.Info("event created",
		slog.String("event_id", e.ID),
		slog.String("account_id", creatorID),
		slog.String("category", e.Category),
	)
	return s.GetEventByID(ctx, e.ID)
}

// UpdateEvent overwrites the mutable fields of an existing event. Any
// authenticated account may update any event; ownership is not enforced
// on events, only on profiles.
func (s *EventService) UpdateEvent(ctx context.Context, id string, p EventParams) (domain.EventWithCreator, error) {
	l := slogx.FromContext(ctx)

	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	if err := validateEvent(p); err != nil {
		return domain.EventWithCreator{}, err
	}

	existing, err := s.GetEventByID(ctx, id)
	if err != nil {
		return domain.EventWithCreator{}, err
	}

	if err := s.checkCategory(ctx, p.Category); err != nil {
		return domain.EventWithCreator{}, err
	}

	e := existing.Event
	e.Title = p.Title
	e.Description = p.Description
	e.Date = p.Date
	e.Category = p.Category
	if err := s.Store.Events().UpdateEvent(ctx, e); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.EventWithCreator{}, ErrNotFound
		}
		return domain.EventWithCreator{}, err
	}

	l.Info("event updated", slog.String("event_id", id))
	return s.GetEventByID(ctx, id)
}

// DeleteEvent removes an event by id.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	l := slogx.FromContext(ctx)

	if err := s.Store.Events().DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	l.Info("event deleted", slog.String("event_id", id))
	return nil
}

func (s *EventService) checkCategory(ctx context.Context, name string) error {
	if _, err := s.Store.Categories().GetCategoryByName(ctx, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCategoryUnknown
		}
		return err
	}
	return nil
}

func validateEvent(p EventParams) error {
	var problems []string

	if n := len(p.Title); n < MinTitleLen || n > MaxTitleLen {
		problems = append(problems, "title must be between 1 and 100 characters")
	}
	if p.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	if p.Category == "" {
		problems = append(problems, "category is required")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
