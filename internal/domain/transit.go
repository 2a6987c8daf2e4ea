package domain

// ProductKind is a transit mode category.
type ProductKind string

const (
	ProductTram        ProductKind = "tram"
	ProductNightTram   ProductKind = "nachttram"
	ProductSuburban    ProductKind = "sbahn"
	ProductUnderground ProductKind = "ubahn"
	ProductBus         ProductKind = "bus"
	ProductNightBus    ProductKind = "nachtbus"
	ProductOther       ProductKind = "other"
)

// ParseProductCode maps the single-letter product codes of the nearby
// endpoint ("s", "u", "t", "b") onto product kinds.
func ParseProductCode(code string) (ProductKind, bool) {
	switch code {
	case "t":
		return ProductTram, true
	case "s":
		return ProductSuburban, true
	case "u":
		return ProductUnderground, true
	case "b":
		return ProductBus, true
	}
	return ProductOther, false
}

// SummaryPrefix is the line-summary prefix printed before each line label
// when listing all lines serving a station.
func (p ProductKind) SummaryPrefix() string {
	switch p {
	case ProductTram:
		return "T"
	case ProductNightTram:
		return "Nt"
	case ProductSuburban:
		return "S"
	case ProductUnderground:
		return "U"
	case ProductBus:
		return ""
	case ProductNightBus:
		return "Nb"
	}
	return "X"
}

// TitlePrefix is the short product marker shown next to the station name.
// Only tram, suburban and underground rail carry a marker there.
func (p ProductKind) TitlePrefix() string {
	switch p {
	case ProductTram:
		return "T"
	case ProductSuburban:
		return "S"
	case ProductUnderground:
		return "U"
	}
	return ""
}

// LineGroup is the ordered set of line labels a station serves for one
// product kind.
type LineGroup struct {
	Product ProductKind
	Labels  []string
}

// Station is an immutable snapshot of a transit station near a queried
// location. Never persisted.
type Station struct {
	ID             int64
	Name           string
	DistanceMeters int
	Products       []ProductKind
	Lines          []LineGroup
}

// Departure is one upcoming departure at a station, already projected down
// to the fields the bot renders. Product is the raw upstream product code
// (e.g. "u", "s") because the per-departure label is built from the code
// itself, not from the product kind.
type Departure struct {
	DepartureTime int64 // epoch millis
	Product       string
	Label         string
	Destination   string
	Sev           bool // service disruption; upstream "false" and "absent" are equivalent
}
