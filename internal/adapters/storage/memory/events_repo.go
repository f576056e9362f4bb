package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"eventhorizon/internal/domain/events"
)

var ErrNotFound = errors.New("not found")

type eventRepo struct {
	mu   sync.RWMutex
	byID map[string]events.Event
}

func NewEventRepo() events.Repository {
	return &eventRepo{
		byID: make(map[string]events.Event),
	}
}

func (r *eventRepo) Create(ctx context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return events.Event{}, ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) ListByStatus(ctx context.Context, status events.EventStatus) ([]events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.Event, 0)
	for _, e := range r.byID {
		if status == "" || e.Status == status {
			out = append(out, e)
		}
	}

	sortByDate(out)
	return out, nil
}

func (r *eventRepo) ListBySubmitter(ctx context.Context, userID string) ([]events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.Event, 0)
	for _, e := range r.byID {
		if e.SubmittedBy == userID {
			out = append(out, e)
		}
	}

	sortByDate(out)
	return out, nil
}

func (r *eventRepo) UpdateStatus(ctx context.Context, id string, status events.EventStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = at
	r.byID[id] = e
	return nil
}

func (r *eventRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	e.Views++
	r.byID[id] = e
	return e.Views, nil
}

// Orden estable por fecha nominal ascendente, con el título de desempate.
func sortByDate(evs []events.Event) {
	sort.Slice(evs, func(i, j int) bool {
		if evs[i].Date != evs[j].Date {
			return evs[i].Date < evs[j].Date
		}
		if evs[i].StartTime != evs[j].StartTime {
			return evs[i].StartTime < evs[j].StartTime
		}
		return evs[i].Title < evs[j].Title
	})
}
