package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"eventhorizon/internal/middleware"
	"eventhorizon/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/events", func(er chi.Router) {
		er.Get("/", listPublicHandler(svc))
		er.Post("/", submitEventHandler(svc))
		er.Get("/{eventID}", getEventHandler(svc))
	})

	r.Get("/me/events", mySubmissionsHandler(svc))

	// Flujo de moderación (solo admin)
	r.Route("/admin/events", func(ar chi.Router) {
		ar.Get("/", adminListHandler(svc))
		ar.Get("/export", adminExportHandler(svc))
		ar.Post("/{eventID}/approve", moderateHandler(svc, EventStatusApproved))
		ar.Post("/{eventID}/reject", moderateHandler(svc, EventStatusRejected))
	})
}

// submitEventRequest es el cuerpo para proponer un evento nuevo.
type submitEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Organizer   string `json:"organizer"`

	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Timezone  string `json:"timezone"`   // IANA, opcional

	LocationType LocationType `json:"location_type" enums:"IRL,Online,Hybrid"`
	City         string       `json:"city"`
	Country      string       `json:"country"`
	Venue        string       `json:"venue"`

	Tags     []string `json:"tags"`
	Category string   `json:"category"`

	Price       PriceTier `json:"price" enums:"Free,Paid"`
	PriceAmount string    `json:"price_amount"`
}

// timingResponse es el estado temporal calculado al momento del request.
type timingResponse struct {
	Status   TimingStatus `json:"status" enums:"upcoming,live,ended"`
	StartsIn string       `json:"starts_in,omitempty"`
	EndsIn   string       `json:"ends_in,omitempty"`
}

// eventResponse representa un evento devuelto por la API.
type eventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Organizer   string `json:"organizer"`

	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone,omitempty"`

	LocationType LocationType `json:"location_type"`
	City         string       `json:"city,omitempty"`
	Country      string       `json:"country,omitempty"`
	Venue        string       `json:"venue,omitempty"`

	Tags     []string `json:"tags"`
	Category string   `json:"category"`

	Price       PriceTier `json:"price"`
	PriceAmount string    `json:"price_amount,omitempty"`

	Views  int64       `json:"views"`
	Status EventStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`

	Timing *timingResponse `json:"timing,omitempty"`
}

// listPublicHandler godoc
// @Summary Listar eventos publicados
// @Description Lista eventos aprobados (más feed externo, si está configurado) con los filtros compuestos: búsqueda de texto, categoría, ubicación, rango de fechas, precio y formato. Eventos terminados hace más de 3 horas no aparecen.
// @Tags events
// @Produce json
// @Param q query string false "Búsqueda de texto libre (título, descripción, organizador, tags)"
// @Param category query string false "Categoría exacta, o 'All'"
// @Param location query string false "'All Locations', 'Online' (incluye Hybrid) o una ciudad"
// @Param date query string false "'Any Date', 'Today', 'This Week', 'This Month', 'This Year'"
// @Param price query string false "'All Prices', 'Free Only', 'Paid Only'"
// @Param format query string false "'All Formats', 'In-Person', 'Online', 'Hybrid'"
// @Success 200 {array} eventResponse
// @Failure 500 {string} string "internal error"
// @Router /events [get]
func listPublicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := parseFilterState(r)

		items, err := svc.ListPublic(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := svc.now()
		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e, &now))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getEventHandler godoc
// @Summary Detalle de un evento
// @Description Devuelve un evento. Los aprobados son públicos y suman una vista; pending/rejected solo los ve quien los propuso o un admin.
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 404 {string} string "event not found"
// @Router /events/{eventID} [get]
func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		if e.Status != EventStatusApproved {
			claims, ok := middleware.GetClaims(r.Context())
			if !ok || (claims.UserID != e.SubmittedBy && !claims.IsAdmin()) {
				// No filtramos existencia: mismo 404 que un ID inexistente.
				http.Error(w, "event not found", http.StatusNotFound)
				return
			}
		} else {
			e.Views = svc.RegisterView(r.Context(), e.ID)
		}

		now := svc.now()
		writeJSON(w, http.StatusOK, toEventResponse(e, &now))
	}
}

// submitEventHandler godoc
// @Summary Proponer un evento
// @Description Crea un evento en estado pending. Requiere autenticación; queda a la espera de aprobación de un admin.
// @Tags events
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body submitEventRequest true "Datos del evento"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /events [post]
func submitEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Submit(r.Context(), claims.UserID, SubmitInput{
			Title:        req.Title,
			Description:  req.Description,
			Organizer:    req.Organizer,
			Date:         req.Date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Timezone:     req.Timezone,
			LocationType: req.LocationType,
			City:         req.City,
			Country:      req.Country,
			Venue:        req.Venue,
			Tags:         req.Tags,
			Category:     req.Category,
			Price:        req.Price,
			PriceAmount:  req.PriceAmount,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		metrics.EventsSubmitted.Inc()
		writeJSON(w, http.StatusCreated, toEventResponse(e, nil))
	}
}

// mySubmissionsHandler godoc
// @Summary Mis eventos propuestos
// @Description Lista los eventos propuestos por el usuario autenticado, en cualquier estado.
// @Tags events
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/events [get]
func mySubmissionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListBySubmitter(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e, nil))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// adminListHandler godoc
// @Summary Listar eventos para moderación
// @Description Lista eventos por estado (?status=pending|approved|rejected; sin status lista todo). Solo admin.
// @Tags admin
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param status query string false "Estado a filtrar"
// @Success 200 {array} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /admin/events [get]
func adminListHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		status := EventStatus(strings.TrimSpace(r.URL.Query().Get("status")))
		items, err := svc.ListByStatus(r.Context(), status)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e, nil))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// adminExportHandler godoc
// @Summary Exportar eventos a CSV
// @Description Descarga el listado de eventos como CSV (?status opcional). Solo admin.
// @Tags admin
// @Produce text/csv
// @Param Authorization header string false "Bearer token"
// @Param status query string false "Estado a filtrar"
// @Success 200 {string} string "CSV"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /admin/events/export [get]
func adminExportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		status := EventStatus(strings.TrimSpace(r.URL.Query().Get("status")))

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="events.csv"`)
		if err := svc.ExportCSV(r.Context(), w, status); err != nil {
			// Headers ya salieron; solo queda loguear en el middleware de acceso.
			return
		}
	}
}

// moderateHandler godoc
// @Summary Aprobar o rechazar un evento
// @Description Transiciona un evento pending a approved o rejected. Solo admin.
// @Tags admin
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "event not found"
// @Router /admin/events/{eventID}/approve [post]
func moderateHandler(svc *Service, status EventStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var (
			e   Event
			err error
		)
		id := chi.URLParam(r, "eventID")
		if status == EventStatusApproved {
			e, err = svc.Approve(r.Context(), id)
		} else {
			e, err = svc.Reject(r.Context(), id)
		}
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		if status == EventStatusApproved {
			metrics.EventsApproved.Inc()
		}
		writeJSON(w, http.StatusOK, toEventResponse(e, nil))
	}
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	if !claims.IsAdmin() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func parseFilterState(r *http.Request) FilterState {
	q := r.URL.Query()
	return FilterState{
		Query:    strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
		Location: strings.TrimSpace(q.Get("location")),
		Range:    DateRange(strings.TrimSpace(q.Get("date"))),
		Price:    strings.TrimSpace(q.Get("price")),
		Format:   strings.TrimSpace(q.Get("format")),
	}
}

// toEventResponse arma la respuesta; con now != nil incluye el timing
// calculado (listado público y detalle; las vistas de moderación no lo
// necesitan).
func toEventResponse(e Event, now *time.Time) eventResponse {
	resp := eventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Organizer:    e.Organizer,
		Date:         e.Date,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Timezone:     e.Timezone,
		LocationType: e.LocationType,
		City:         e.City,
		Country:      e.Country,
		Venue:        e.Venue,
		Tags:         e.Tags,
		Category:     e.Category,
		Price:        e.Price,
		PriceAmount:  e.PriceAmount,
		Views:        e.Views,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}

	if now != nil {
		t := ResolveTiming(e, *now)
		resp.Timing = &timingResponse{
			Status:   t.Status,
			StartsIn: t.StartsIn,
			EndsIn:   t.EndsIn,
		}
	}
	return resp
}

// writeJSON está duplicado a propósito en los handlers de cada módulo para
// no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
