package events

type LocationType string

const (
	LocationIRL    LocationType = "IRL"
	LocationOnline LocationType = "Online"
	LocationHybrid LocationType = "Hybrid"
)

type PriceTier string

const (
	PriceFree PriceTier = "Free"
	PricePaid PriceTier = "Paid"
)

type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
)

// TimingStatus es el estado temporal de un evento relativo a "now".
// Los tres estados son mutuamente excluyentes y exhaustivos.
type TimingStatus string

const (
	TimingUpcoming TimingStatus = "upcoming"
	TimingLive     TimingStatus = "live"
	TimingEnded    TimingStatus = "ended"
)

// DateRange son los rangos seleccionables en el filtro de fechas.
// Un valor desconocido no es error: el predicado lo trata como AnyDate.
type DateRange string

const (
	RangeAnyDate   DateRange = "Any Date"
	RangeToday     DateRange = "Today"
	RangeThisWeek  DateRange = "This Week"
	RangeThisMonth DateRange = "This Month"
	RangeThisYear  DateRange = "This Year"
)

// Valores "sin filtro" de cada combo del listado público.
const (
	CategoryAll  = "All"
	LocationAll  = "All Locations"
	PriceAll     = "All Prices"
	PriceFreeOpt = "Free Only"
	PricePaidOpt = "Paid Only"
	FormatAll    = "All Formats"
	FormatIRL    = "In-Person"
	FormatOnline = "Online"
	FormatHybrid = "Hybrid"
)
