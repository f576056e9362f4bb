package events

import (
	"testing"
	"time"
)

func TestFilterActive_GraceBoundary(t *testing.T) {
	e := baseEvent() // termina 2025-12-05 18:00 UTC
	end := utc(2025, 12, 5, 18, 0)

	cases := []struct {
		name string
		now  time.Time
		keep bool
	}{
		{"still live", utc(2025, 12, 5, 17, 0), true},
		{"ended 2.5h ago", utc(2025, 12, 5, 20, 30), true},
		{"exactly 3h after end", end.Add(3 * time.Hour), true},
		{"a microsecond past 3h", end.Add(3*time.Hour + time.Microsecond), false},
		{"4h after end", utc(2025, 12, 5, 22, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := FilterActive([]Event{e}, tc.now)
			if kept := len(out) == 1; kept != tc.keep {
				t.Fatalf("keep=%v, expected %v", kept, tc.keep)
			}
		})
	}
}

func TestFilterActive_MalformedEvent_GraceRunsFromStart(t *testing.T) {
	e := baseEvent()
	e.EndTime = "08:00" // end <= start: la gracia corre desde las 09:00

	if out := FilterActive([]Event{e}, utc(2025, 12, 5, 11, 0)); len(out) != 1 {
		t.Fatalf("expected malformed event retained within grace, got %d", len(out))
	}
	if out := FilterActive([]Event{e}, utc(2025, 12, 5, 12, 1)); len(out) != 0 {
		t.Fatalf("expected malformed event hidden past grace")
	}

	// Sin instantes calculables se oculta directo.
	e.Date = "not-a-date"
	if out := FilterActive([]Event{e}, utc(2025, 12, 5, 9, 0)); len(out) != 0 {
		t.Fatalf("expected unparseable event hidden")
	}
}

func TestMatchesQuery(t *testing.T) {
	e := Event{
		Title:       "Mumbai Startup Pitch Fest",
		Description: "Founders pitch to a panel",
		Organizer:   "TechCircle",
		Tags:        []string{"Pitching", "Investment"},
	}

	cases := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"HACKATHON", false},
		{"pitch", true},
		{"PITCH", true},      // case-insensitive
		{"invest", true},     // substring en tags
		{"techcircle", true}, // organizador
		{"panel", true},      // descripción
		{"blockchain", false},
	}

	for _, tc := range cases {
		if got := MatchesQuery(e, tc.query); got != tc.want {
			t.Fatalf("MatchesQuery(%q) = %v, expected %v", tc.query, got, tc.want)
		}
	}
}

func TestMatchesQuery_SameResultRegardlessOfCase(t *testing.T) {
	e := Event{Title: "Hackathon Weekend"}
	if MatchesQuery(e, "HACKATHON") != MatchesQuery(e, "hackathon") {
		t.Fatalf("query matching must be case-insensitive")
	}
}

func TestMatchesCategory_ExactAndCaseSensitive(t *testing.T) {
	e := Event{Category: "Conference"}

	if !MatchesCategory(e, CategoryAll) || !MatchesCategory(e, "") {
		t.Fatalf("'All' and empty must match everything")
	}
	if !MatchesCategory(e, "Conference") {
		t.Fatalf("exact category must match")
	}
	if MatchesCategory(e, "conference") {
		t.Fatalf("category match is case-sensitive")
	}
}

func TestMatchesLocation_OnlineIncludesHybrid(t *testing.T) {
	online := Event{LocationType: LocationOnline}
	hybrid := Event{LocationType: LocationHybrid, City: "Pune"}
	irl := Event{LocationType: LocationIRL, City: "Mumbai"}

	if !MatchesLocation(online, LocationAll) {
		t.Fatalf("'All Locations' must match")
	}
	if !MatchesLocation(online, "Online") || !MatchesLocation(hybrid, "Online") {
		t.Fatalf("location 'Online' must accept Online and Hybrid")
	}
	if MatchesLocation(irl, "Online") {
		t.Fatalf("location 'Online' must not accept IRL")
	}
	if !MatchesLocation(irl, "Mumbai") || MatchesLocation(irl, "Pune") {
		t.Fatalf("city match must be exact")
	}
}

func TestMatchesFormat_OnlineIsStrict(t *testing.T) {
	// A diferencia del filtro de ubicación, el formato 'Online' NO acepta
	// Hybrid. Son dos predicados independientes a propósito.
	online := Event{LocationType: LocationOnline}
	hybrid := Event{LocationType: LocationHybrid}
	irl := Event{LocationType: LocationIRL}

	if !MatchesFormat(online, FormatAll) {
		t.Fatalf("'All Formats' must match")
	}
	if !MatchesFormat(online, FormatOnline) || MatchesFormat(hybrid, FormatOnline) {
		t.Fatalf("format 'Online' must accept Online only")
	}
	if !MatchesFormat(hybrid, FormatHybrid) || !MatchesFormat(irl, FormatIRL) {
		t.Fatalf("format must match its own location type")
	}
	if MatchesFormat(irl, FormatOnline) {
		t.Fatalf("format 'Online' must not accept IRL")
	}
}

func TestInDateRange(t *testing.T) {
	cases := []struct {
		name string
		date string
		rng  DateRange
		now  time.Time
		want bool
	}{
		{"any date", "2030-01-01", RangeAnyDate, utc(2025, 12, 2, 10, 0), true},
		{"today match", "2025-12-02", RangeToday, utc(2025, 12, 2, 23, 59), true},
		{"today mismatch", "2025-12-03", RangeToday, utc(2025, 12, 2, 10, 0), false},
		{"this week within +7", "2025-12-05", RangeThisWeek, utc(2025, 12, 2, 10, 0), true},
		{"this week outside", "2025-12-05", RangeThisWeek, utc(2025, 12, 10, 10, 0), false},
		{"this week boundary +7 inclusive", "2025-12-09", RangeThisWeek, utc(2025, 12, 2, 10, 0), true},
		{"this week past excluded", "2025-12-01", RangeThisWeek, utc(2025, 12, 2, 10, 0), false},
		{"this month", "2025-12-25", RangeThisMonth, utc(2025, 12, 2, 10, 0), true},
		{"this month other year", "2026-12-25", RangeThisMonth, utc(2025, 12, 2, 10, 0), false},
		{"this year", "2025-01-01", RangeThisYear, utc(2025, 12, 2, 10, 0), true},
		{"this year mismatch", "2026-01-01", RangeThisYear, utc(2025, 12, 2, 10, 0), false},
		{"unknown range is permissive", "2030-01-01", DateRange("Next Decade"), utc(2025, 12, 2, 10, 0), true},
		{"malformed date", "tomorrow", RangeToday, utc(2025, 12, 2, 10, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InDateRange(tc.date, tc.rng, tc.now); got != tc.want {
				t.Fatalf("InDateRange(%q, %q) = %v, expected %v", tc.date, tc.rng, got, tc.want)
			}
		})
	}
}

func TestMatchesPrice(t *testing.T) {
	free := Event{Price: PriceFree}
	paid := Event{Price: PricePaid, PriceAmount: "₹499"}

	if !MatchesPrice(free, PriceAll) || !MatchesPrice(paid, "") {
		t.Fatalf("'All Prices' and empty must match everything")
	}
	if !MatchesPrice(free, PriceFreeOpt) || MatchesPrice(paid, PriceFreeOpt) {
		t.Fatalf("'Free Only' must accept free events only")
	}
	if !MatchesPrice(paid, PricePaidOpt) || MatchesPrice(free, PricePaidOpt) {
		t.Fatalf("'Paid Only' must accept paid events only")
	}
}

func filterFixture() []Event {
	return []Event{
		{
			ID: "live-free", Title: "Go Meetup", Organizer: "GDG",
			Date: "2025-12-05", StartTime: "09:00", EndTime: "18:00", Timezone: "UTC",
			LocationType: LocationIRL, City: "Mumbai", Category: "Meetup",
			Price: PriceFree, Tags: []string{"Go", "Backend"},
		},
		{
			ID: "upcoming-paid", Title: "Startup Pitch Fest", Organizer: "TechCircle",
			Date: "2025-12-06", StartTime: "10:00", EndTime: "17:00", Timezone: "UTC",
			LocationType: LocationHybrid, City: "Pune", Category: "Pitching",
			Price: PricePaid, PriceAmount: "₹499", Tags: []string{"Pitching", "Investment"},
		},
		{
			ID: "online-free", Title: "Remote AI Summit", Organizer: "AI Guild",
			Date: "2025-12-05", StartTime: "12:00", EndTime: "20:00", Timezone: "UTC",
			LocationType: LocationOnline, Category: "Conference",
			Price: PriceFree, Tags: []string{"AI"},
		},
		{
			ID: "long-gone", Title: "Old Hack Night", Organizer: "GDG",
			Date: "2025-12-01", StartTime: "18:00", EndTime: "22:00", Timezone: "UTC",
			LocationType: LocationIRL, City: "Mumbai", Category: "Hackathon",
			Price: PriceFree, Tags: []string{"Hack"},
		},
	}
}

func TestComposeFilters_AutoHideRunsFirst(t *testing.T) {
	now := utc(2025, 12, 5, 13, 0)

	// "long-gone" matchea todos los predicados (query vacío etc.) pero
	// terminó hace días: el auto-hide lo saca y no reaparece.
	out := ComposeFilters(filterFixture(), now, FilterState{})
	for _, e := range out {
		if e.ID == "long-gone" {
			t.Fatalf("auto-hidden event must not reappear")
		}
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 visible events, got %d", len(out))
	}
}

func TestComposeFilters_ANDComposition(t *testing.T) {
	now := utc(2025, 12, 5, 13, 0)

	out := ComposeFilters(filterFixture(), now, FilterState{
		Query:    "go",
		Location: "Mumbai",
		Price:    PriceFreeOpt,
		Format:   FormatIRL,
	})
	if len(out) != 1 || out[0].ID != "live-free" {
		t.Fatalf("expected only live-free, got %#v", out)
	}

	// Un predicado que no matchea voltea el conjunto aunque el resto sí.
	out = ComposeFilters(filterFixture(), now, FilterState{
		Query: "go",
		Price: PricePaidOpt,
	})
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}
}

func TestComposeFilters_Idempotent(t *testing.T) {
	now := utc(2025, 12, 5, 13, 0)
	f := FilterState{Location: "Online", Range: RangeThisWeek}

	once := ComposeFilters(filterFixture(), now, f)
	twice := ComposeFilters(once, now, f)

	if len(once) != len(twice) {
		t.Fatalf("expected idempotent composition: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("expected same events in same order")
		}
	}
}

func TestComposeFilters_MonotonicUnderExtraFilters(t *testing.T) {
	now := utc(2025, 12, 5, 13, 0)

	base := ComposeFilters(filterFixture(), now, FilterState{})
	narrowed := []FilterState{
		{Query: "pitch"},
		{Category: "Meetup"},
		{Location: "Online"},
		{Range: RangeToday},
		{Price: PriceFreeOpt},
		{Format: FormatHybrid},
		{Query: "go", Price: PriceFreeOpt, Format: FormatIRL},
	}

	for _, f := range narrowed {
		out := ComposeFilters(filterFixture(), now, f)
		if len(out) > len(base) {
			t.Fatalf("adding filters grew the result set: %d > %d (%+v)", len(out), len(base), f)
		}
	}
}
