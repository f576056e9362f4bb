package events

import (
	"fmt"
	"time"
)

// Timing es el estado temporal de un evento en un instante dado.
// StartsIn solo viene con estado upcoming; EndsIn solo con live.
type Timing struct {
	Status   TimingStatus
	StartsIn string
	EndsIn   string
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// instants resuelve Date + StartTime/EndTime a instantes absolutos en la
// zona declarada del evento (o la zona local si falta o no carga).
// ok=false si ni siquiera se puede calcular el instante de inicio.
func (e Event) instants() (start, end time.Time, ok bool) {
	loc := time.Local
	if e.Timezone != "" {
		if l, err := time.LoadLocation(e.Timezone); err == nil {
			loc = l
		}
	}

	day, err := time.ParseInLocation(dateLayout, e.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	st, err := time.ParseInLocation(timeLayout, e.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	start = time.Date(day.Year(), day.Month(), day.Day(), st.Hour(), st.Minute(), 0, 0, loc)

	// EndTime inválido degrada a end==start: el evento "termina" al arrancar.
	end = start
	if et, err := time.ParseInLocation(timeLayout, e.EndTime, loc); err == nil {
		end = time.Date(day.Year(), day.Month(), day.Day(), et.Hour(), et.Minute(), 0, 0, loc)
	}

	return start, end, true
}

// ResolveTiming es una función pura de (evento, now): no mira el reloj ni
// guarda estado, así los tests inyectan now y el caller decide cada cuánto
// re-evaluar (el listado lo recalcula en cada request).
func ResolveTiming(e Event, now time.Time) Timing {
	start, end, ok := e.instants()
	if !ok {
		// Fecha rota: preferimos ocultar antes que mostrar algo inconsistente.
		return Timing{Status: TimingEnded}
	}

	if now.Before(start) {
		return Timing{
			Status:   TimingUpcoming,
			StartsIn: humanizeDuration(start.Sub(now)),
		}
	}

	// end <= start (input malformado) cae acá directo: ended desde el inicio,
	// nunca un "live" que no termina.
	if now.Before(end) {
		return Timing{
			Status: TimingLive,
			EndsIn: humanizeDuration(end.Sub(now)),
		}
	}

	return Timing{Status: TimingEnded}
}

// humanizeDuration devuelve la unidad entera más grande >= 1 (días > horas >
// minutos), truncando hacia abajo. 23h es "23 hours", no "1 day"; menos de un
// minuto reporta "1 minute".
func humanizeDuration(d time.Duration) string {
	if days := int(d.Hours()) / 24; days >= 1 {
		return pluralize(days, "day")
	}
	if hours := int(d.Hours()); hours >= 1 {
		return pluralize(hours, "hour")
	}
	if mins := int(d.Minutes()); mins >= 1 {
		return pluralize(mins, "minute")
	}
	return "1 minute"
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
