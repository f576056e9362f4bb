package events

import (
	"strings"
	"time"
)

// Ventana de gracia post-evento: un evento terminado sigue visible (badge
// "Ended") hasta 3 horas después de su fin, inclusive. Pasado eso se oculta
// del listado; nunca se borra del store.
const autoHideGrace = 3 * time.Hour

// FilterState es el set inmutable de filtros activos del listado.
// El zero value no filtra nada: string vacío equivale al valor "All ..."
// de cada combo.
type FilterState struct {
	Query    string
	Category string
	Location string
	Range    DateRange
	Price    string
	Format   string
}

// FilterActive aplica solo el auto-hide: descarta eventos cuyo fin quedó a
// más de autoHideGrace en el pasado. Filtro de vista, no muta nada.
func FilterActive(evs []Event, now time.Time) []Event {
	out := make([]Event, 0, len(evs))
	for _, e := range evs {
		if !hiddenByGrace(e, now) {
			out = append(out, e)
		}
	}
	return out
}

func hiddenByGrace(e Event, now time.Time) bool {
	if ResolveTiming(e, now).Status != TimingEnded {
		return false
	}

	start, end, ok := e.instants()
	if !ok {
		// Sin instantes calculables no hay ventana que medir: ocultar.
		return true
	}
	if end.Before(start) {
		// Malformado: la gracia corre desde el inicio.
		end = start
	}

	// Borde inclusivo: exactamente 3h después del fin todavía se muestra.
	return now.Sub(end) > autoHideGrace
}

// MatchesQuery hace substring match case-insensitive contra título,
// descripción, organizador y tags. Sin stemming ni fuzzy: búsqueda literal.
func MatchesQuery(e Event, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	if strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q) ||
		strings.Contains(strings.ToLower(e.Organizer), q) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// MatchesCategory compara exacto y case-sensitive contra la categoría.
func MatchesCategory(e Event, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return e.Category == category
}

// MatchesLocation: "Online" acá acepta Online y Hybrid; cualquier otro valor
// se compara contra la ciudad. Ojo: el filtro de formato tiene su propia
// semántica de "Online" (solo Online) y es deliberado que no compartan lógica.
func MatchesLocation(e Event, location string) bool {
	switch location {
	case "", LocationAll:
		return true
	case FormatOnline:
		return e.LocationType == LocationOnline || e.LocationType == LocationHybrid
	default:
		return e.City == location
	}
}

// InDateRange decide pertenencia con granularidad de día calendario en la
// zona de now. Rango desconocido no es error: pasa todo.
func InDateRange(date string, rng DateRange, now time.Time) bool {
	switch rng {
	case "", RangeAnyDate:
		return true
	}

	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return false
	}

	y, m, d := day.Date()
	ny, nm, nd := now.Date()

	switch rng {
	case RangeToday:
		return y == ny && m == nm && d == nd
	case RangeThisWeek:
		// [hoy, hoy+7] inclusive, hora del día en cero en ambos lados.
		today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())
		target := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		return !target.Before(today) && !target.After(today.AddDate(0, 0, 7))
	case RangeThisMonth:
		return y == ny && m == nm
	case RangeThisYear:
		return y == ny
	default:
		return true
	}
}

func MatchesPrice(e Event, price string) bool {
	switch price {
	case PriceFreeOpt:
		return e.Price == PriceFree
	case PricePaidOpt:
		return e.Price == PricePaid
	default:
		return true
	}
}

func MatchesFormat(e Event, format string) bool {
	switch format {
	case FormatIRL:
		return e.LocationType == LocationIRL
	case FormatOnline:
		return e.LocationType == LocationOnline
	case FormatHybrid:
		return e.LocationType == LocationHybrid
	default:
		return true
	}
}

// ComposeFilters corre el pipeline completo: auto-hide primero (un evento
// oculto no reaparece aunque matchee todo) y después el AND de todos los
// predicados activos, con short-circuit.
func ComposeFilters(evs []Event, now time.Time, f FilterState) []Event {
	out := make([]Event, 0, len(evs))
	for _, e := range FilterActive(evs, now) {
		if !MatchesQuery(e, f.Query) {
			continue
		}
		if !MatchesCategory(e, f.Category) {
			continue
		}
		if !MatchesLocation(e, f.Location) {
			continue
		}
		if !InDateRange(e.Date, f.Range, now) {
			continue
		}
		if !MatchesPrice(e, f.Price) {
			continue
		}
		if !MatchesFormat(e, f.Format) {
			continue
		}
		out = append(out, e)
	}
	return out
}
