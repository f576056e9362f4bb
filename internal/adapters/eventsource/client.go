// Package eventsource trae eventos de una API de terceros para mezclarlos en
// el listado público. El caller (events.Service) trata cualquier error como
// contribución vacía; acá solo se reporta.
package eventsource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"eventhorizon/internal/domain/events"
	"eventhorizon/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("eventsource client not configured")
	ErrUpstream      = errors.New("eventsource upstream error")
)

// Config del feed externo. BaseURL y APIKey vienen de env en quien instancia.
type Config struct {
	BaseURL string
	APIKey  string

	// Header para la API key; vacío usa "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: header,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// externalEvent es el payload del proveedor. Campos mínimos; lo que falte se
// deja vacío y los filtros lo tratan como ausente.
type externalEvent struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Organizer   string   `json:"organizer"`
	Date        string   `json:"date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Timezone    string   `json:"timezone"`
	Location    string   `json:"location_type"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Venue       string   `json:"venue"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	PriceAmount string   `json:"price_amount"`
}

// FetchEvents implementa events.ExternalSource.
func (c *Client) FetchEvents(ctx context.Context) ([]events.Event, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers[c.apiKeyHeader] = c.apiKey
	}

	var out []externalEvent
	if err := c.http.DoJSON(ctx, http.MethodGet, "/v1/events", headers, nil, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	evs := make([]events.Event, 0, len(out))
	for _, x := range out {
		if strings.TrimSpace(x.ID) == "" || strings.TrimSpace(x.Title) == "" {
			continue
		}
		evs = append(evs, toDomain(x))
	}
	return evs, nil
}

func toDomain(x externalEvent) events.Event {
	loc := events.LocationType(x.Location)
	switch loc {
	case events.LocationIRL, events.LocationOnline, events.LocationHybrid:
	default:
		// Proveedores sin formato declarado: asumimos presencial si hay
		// ciudad, online si no.
		if strings.TrimSpace(x.City) != "" {
			loc = events.LocationIRL
		} else {
			loc = events.LocationOnline
		}
	}

	price := events.PriceTier(x.Price)
	if price != events.PricePaid {
		price = events.PriceFree
	}

	return events.Event{
		ID:           "ext-" + x.ID,
		Title:        x.Title,
		Description:  x.Description,
		Organizer:    x.Organizer,
		Date:         x.Date,
		StartTime:    x.StartTime,
		EndTime:      x.EndTime,
		Timezone:     x.Timezone,
		LocationType: loc,
		City:         x.City,
		Country:      x.Country,
		Venue:        x.Venue,
		Tags:         x.Tags,
		Category:     x.Category,
		Price:        price,
		PriceAmount:  x.PriceAmount,
		Status:       events.EventStatusApproved,
	}
}
