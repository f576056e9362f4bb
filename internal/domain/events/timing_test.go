package events

import (
	"testing"
	"time"
)

// Evento base de los escenarios: 2025-12-05, 09:00 a 18:00 UTC.
func baseEvent() Event {
	return Event{
		ID:        "ev-1",
		Title:     "Mumbai Startup Pitch Fest",
		Date:      "2025-12-05",
		StartTime: "09:00",
		EndTime:   "18:00",
		Timezone:  "UTC",
	}
}

func utc(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestResolveTiming_Live_EndsIn(t *testing.T) {
	tm := ResolveTiming(baseEvent(), utc(2025, 12, 5, 10, 0))
	if tm.Status != TimingLive {
		t.Fatalf("expected live, got %s", tm.Status)
	}
	if tm.EndsIn != "8 hours" {
		t.Fatalf("expected ends in '8 hours', got %q", tm.EndsIn)
	}
	if tm.StartsIn != "" {
		t.Fatalf("live must not report starts_in, got %q", tm.StartsIn)
	}
}

func TestResolveTiming_Upcoming_FloorsToLargestWholeUnit(t *testing.T) {
	// Convención elegida: truncar hacia abajo. 23h antes del inicio es
	// "23 hours", no "1 day"; recién a partir de 24h enteras es "1 day".
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"23h before", utc(2025, 12, 4, 10, 0), "23 hours"},
		{"24h 1m before", utc(2025, 12, 4, 8, 59), "1 day"},
		{"2 days before", utc(2025, 12, 3, 9, 0), "2 days"},
		{"5h before", utc(2025, 12, 5, 4, 0), "5 hours"},
		{"30m before", utc(2025, 12, 5, 8, 30), "30 minutes"},
		{"1m before", utc(2025, 12, 5, 8, 59), "1 minute"},
		{"30s before", utc(2025, 12, 5, 8, 59).Add(30 * time.Second), "1 minute"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tm := ResolveTiming(baseEvent(), tc.now)
			if tm.Status != TimingUpcoming {
				t.Fatalf("expected upcoming, got %s", tm.Status)
			}
			if tm.StartsIn != tc.want {
				t.Fatalf("expected starts_in %q, got %q", tc.want, tm.StartsIn)
			}
		})
	}
}

func TestResolveTiming_Ended_NoCountdown(t *testing.T) {
	tm := ResolveTiming(baseEvent(), utc(2025, 12, 5, 20, 30))
	if tm.Status != TimingEnded {
		t.Fatalf("expected ended, got %s", tm.Status)
	}
	if tm.StartsIn != "" || tm.EndsIn != "" {
		t.Fatalf("ended must not report countdowns, got %q/%q", tm.StartsIn, tm.EndsIn)
	}
}

func TestResolveTiming_Boundaries(t *testing.T) {
	e := baseEvent()

	// now == start-instant: ya es live (start <= now < end).
	if got := ResolveTiming(e, utc(2025, 12, 5, 9, 0)).Status; got != TimingLive {
		t.Fatalf("at start instant expected live, got %s", got)
	}
	// now == end-instant: ya es ended (now >= end).
	if got := ResolveTiming(e, utc(2025, 12, 5, 18, 0)).Status; got != TimingEnded {
		t.Fatalf("at end instant expected ended, got %s", got)
	}
}

func TestResolveTiming_StatusPartition(t *testing.T) {
	// Exactamente uno de los tres estados para cualquier now, barriendo el
	// día del evento de punta a punta.
	e := baseEvent()
	now := utc(2025, 12, 4, 0, 0)
	end := utc(2025, 12, 6, 23, 59)

	for ; now.Before(end); now = now.Add(17 * time.Minute) {
		s := ResolveTiming(e, now).Status
		switch s {
		case TimingUpcoming, TimingLive, TimingEnded:
		default:
			t.Fatalf("unexpected status %q at %s", s, now)
		}

		wantUpcoming := now.Before(utc(2025, 12, 5, 9, 0))
		wantEnded := !now.Before(utc(2025, 12, 5, 18, 0))
		if wantUpcoming && s != TimingUpcoming {
			t.Fatalf("at %s expected upcoming, got %s", now, s)
		}
		if wantEnded && s != TimingEnded {
			t.Fatalf("at %s expected ended, got %s", now, s)
		}
		if !wantUpcoming && !wantEnded && s != TimingLive {
			t.Fatalf("at %s expected live, got %s", now, s)
		}
	}
}

func TestResolveTiming_MalformedEndBeforeStart_NeverLive(t *testing.T) {
	e := baseEvent()
	e.EndTime = "08:00" // termina "antes" de empezar

	// Antes del inicio sigue siendo upcoming.
	if got := ResolveTiming(e, utc(2025, 12, 5, 7, 0)).Status; got != TimingUpcoming {
		t.Fatalf("before start expected upcoming, got %s", got)
	}
	// Desde el inicio en adelante es ended, nunca un live eterno.
	for _, now := range []time.Time{
		utc(2025, 12, 5, 9, 0),
		utc(2025, 12, 5, 12, 0),
		utc(2025, 12, 6, 0, 0),
	} {
		if got := ResolveTiming(e, now).Status; got != TimingEnded {
			t.Fatalf("at %s expected ended for malformed event, got %s", now, got)
		}
	}
}

func TestResolveTiming_UnparseableDate_FailsSafeToEnded(t *testing.T) {
	e := baseEvent()
	e.Date = "someday"
	if got := ResolveTiming(e, utc(2025, 12, 5, 10, 0)).Status; got != TimingEnded {
		t.Fatalf("expected ended for unparseable date, got %s", got)
	}

	e = baseEvent()
	e.StartTime = "9am"
	if got := ResolveTiming(e, utc(2025, 12, 5, 10, 0)).Status; got != TimingEnded {
		t.Fatalf("expected ended for unparseable start time, got %s", got)
	}
}

func TestResolveTiming_RespectsEventTimezone(t *testing.T) {
	e := baseEvent()
	e.Timezone = "America/New_York" // 09:00 EST == 14:00 UTC en diciembre

	tm := ResolveTiming(e, utc(2025, 12, 5, 13, 0))
	if tm.Status != TimingUpcoming {
		t.Fatalf("expected upcoming an hour before NY start, got %s", tm.Status)
	}
	if tm.StartsIn != "1 hour" {
		t.Fatalf("expected starts_in '1 hour', got %q", tm.StartsIn)
	}

	if got := ResolveTiming(e, utc(2025, 12, 5, 14, 30)).Status; got != TimingLive {
		t.Fatalf("expected live after NY start, got %s", got)
	}
}

func TestResolveTiming_UnknownTimezoneFallsBackToLocal(t *testing.T) {
	e := baseEvent()
	e.Timezone = "Mars/Olympus"

	start := time.Date(2025, 12, 5, 9, 0, 0, 0, time.Local)
	if got := ResolveTiming(e, start.Add(-time.Hour)).Status; got != TimingUpcoming {
		t.Fatalf("expected upcoming in local time, got %s", got)
	}
	if got := ResolveTiming(e, start.Add(time.Hour)).Status; got != TimingLive {
		t.Fatalf("expected live in local time, got %s", got)
	}
}
