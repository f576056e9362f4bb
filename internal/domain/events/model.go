package events

import "time"

// Event representa un evento publicado o en revisión.
// Date es la fecha nominal (YYYY-MM-DD); StartTime/EndTime son hora local
// del evento en formato HH:MM, interpretadas en Timezone (IANA).
type Event struct {
	ID string

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

	Views int64

	Status      EventStatus
	SubmittedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}
