package events

import (
	"context"
	"time"
)

// Repository es el contrato de persistencia de eventos.
// ListByStatus con status vacío lista todo (lo usa el export de admin).
type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	ListByStatus(ctx context.Context, status EventStatus) ([]Event, error)
	ListBySubmitter(ctx context.Context, userID string) ([]Event, error)
	UpdateStatus(ctx context.Context, id string, status EventStatus, at time.Time) error
	IncrementViews(ctx context.Context, id string) (int64, error)
}

// ExternalSource trae eventos de una API de terceros para mezclar en el
// listado público. Sus errores se tragan aguas arriba: contribución vacía,
// nunca error fatal para el listado.
type ExternalSource interface {
	FetchEvents(ctx context.Context) ([]Event, error)
}

// ViewCounter es el contador de vistas opcional (Redis). Si no está
// configurado, el contador vive en el repositorio.
type ViewCounter interface {
	Add(ctx context.Context, eventID string) (int64, error)
}
