package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo     Repository
	external ExternalSource
	views    ViewCounter
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// AttachExternalSource conecta el feed externo de eventos (opcional).
func (s *Service) AttachExternalSource(src ExternalSource) {
	s.external = src
}

// AttachViewCounter conecta el contador de vistas cacheado (opcional).
func (s *Service) AttachViewCounter(vc ViewCounter) {
	s.views = vc
}

type SubmitInput struct {
	Title       string
	Description string
	Organizer   string

	Date      string
	StartTime string
	EndTime   string
	Timezone  string

	LocationType LocationType
	City         string
	Country      string
	Venue        string

	Tags     []string
	Category string

	Price       PriceTier
	PriceAmount string
}

// Submit registra un evento en estado pending. La transición a
// approved/rejected es exclusiva del flujo de admin.
func (s *Service) Submit(ctx context.Context, submitterID string, in SubmitInput) (Event, error) {
	if strings.TrimSpace(submitterID) == "" {
		return Event{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Category) == "" {
		return Event{}, ErrInvalidInput
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return Event{}, ErrInvalidInput
	}
	if _, err := time.Parse(timeLayout, in.StartTime); err != nil {
		return Event{}, ErrInvalidInput
	}
	if _, err := time.Parse(timeLayout, in.EndTime); err != nil {
		return Event{}, ErrInvalidInput
	}

	switch in.LocationType {
	case LocationIRL, LocationHybrid:
		// Eventos presenciales necesitan al menos ciudad.
		if strings.TrimSpace(in.City) == "" {
			return Event{}, ErrInvalidInput
		}
	case LocationOnline:
		// ok sin city/venue
	default:
		return Event{}, ErrInvalidInput
	}

	switch in.Price {
	case PriceFree:
		in.PriceAmount = ""
	case PricePaid:
		// monto opcional, solo display
	default:
		return Event{}, ErrInvalidInput
	}

	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	now := s.now()
	e := Event{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Organizer:    strings.TrimSpace(in.Organizer),
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Timezone:     strings.TrimSpace(in.Timezone),
		LocationType: in.LocationType,
		City:         strings.TrimSpace(in.City),
		Country:      strings.TrimSpace(in.Country),
		Venue:        strings.TrimSpace(in.Venue),
		Tags:         tags,
		Category:     strings.TrimSpace(in.Category),
		Price:        in.Price,
		PriceAmount:  strings.TrimSpace(in.PriceAmount),
		Status:       EventStatusPending,
		SubmittedBy:  submitterID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ListPublic arma el listado que ve cualquier visitante: aprobados del store
// más la contribución del feed externo, pasados por el pipeline de filtros.
// Un error del feed externo no voltea el listado: contribuye vacío.
func (s *Service) ListPublic(ctx context.Context, f FilterState) ([]Event, error) {
	merged, err := s.repo.ListByStatus(ctx, EventStatusApproved)
	if err != nil {
		return nil, err
	}

	if s.external != nil {
		if ext, err := s.external.FetchEvents(ctx); err == nil {
			merged = append(merged, ext...)
		}
	}

	return ComposeFilters(merged, s.now(), f), nil
}

func (s *Service) ListByStatus(ctx context.Context, status EventStatus) ([]Event, error) {
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) ListBySubmitter(ctx context.Context, userID string) ([]Event, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListBySubmitter(ctx, userID)
}

// RegisterView suma una vista. Si hay counter cacheado usa ese; si falla o no
// existe, cae al contador del repositorio. Best-effort: el detalle del evento
// nunca falla por no poder contar.
func (s *Service) RegisterView(ctx context.Context, id string) int64 {
	if s.views != nil {
		if n, err := s.views.Add(ctx, id); err == nil {
			return n
		}
	}
	n, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return 0
	}
	return n
}

func (s *Service) Approve(ctx context.Context, id string) (Event, error) {
	return s.moderate(ctx, id, EventStatusApproved)
}

func (s *Service) Reject(ctx context.Context, id string) (Event, error) {
	return s.moderate(ctx, id, EventStatusRejected)
}

func (s *Service) moderate(ctx context.Context, id string, status EventStatus) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}
	if err := s.repo.UpdateStatus(ctx, id, status, s.now()); err != nil {
		return Event{}, err
	}
	return s.repo.GetByID(ctx, id)
}
