package mvg

import "github.com/Laetus/mvv-bot/internal/domain"

type nearbyResponse struct {
	Locations []stationRecord `json:"locations"`
}

type stationRecord struct {
	ID       int64               `json:"id"`
	Name     string              `json:"name"`
	Distance int                 `json:"distance"`
	Products []string            `json:"products"`
	Lines    map[string][]string `json:"lines"`
}

type departuresResponse struct {
	Departures []departureRecord `json:"departures"`
}

// departureRecord carries only the fields the bot consumes. The upstream
// departureId and lineBackgroundColor fields are dropped here, at the
// parse boundary.
type departureRecord struct {
	DepartureTime int64  `json:"departureTime"`
	Product       string `json:"product"`
	Label         string `json:"label"`
	Destination   string `json:"destination"`
	Sev           bool   `json:"sev"`
}

// lineCategories fixes the order in which line groups are reported. The
// upstream lines object is a JSON map, so iteration order has to be pinned
// down here for stable rendering.
var lineCategories = []struct {
	key     string
	product domain.ProductKind
}{
	{"tram", domain.ProductTram},
	{"nachttram", domain.ProductNightTram},
	{"sbahn", domain.ProductSuburban},
	{"ubahn", domain.ProductUnderground},
	{"bus", domain.ProductBus},
	{"nachtbus", domain.ProductNightBus},
	{"otherlines", domain.ProductOther},
}

func (r stationRecord) toDomain() domain.Station {
	st := domain.Station{
		ID:             r.ID,
		Name:           r.Name,
		DistanceMeters: r.Distance,
	}
	for _, code := range r.Products {
		if kind, ok := domain.ParseProductCode(code); ok {
			st.Products = append(st.Products, kind)
		}
	}
	for _, cat := range lineCategories {
		labels := r.Lines[cat.key]
		if len(labels) == 0 {
			continue
		}
		st.Lines = append(st.Lines, domain.LineGroup{Product: cat.product, Labels: labels})
	}
	return st
}

func (r departureRecord) toDomain() domain.Departure {
	return domain.Departure{
		DepartureTime: r.DepartureTime,
		Product:       r.Product,
		Label:         r.Label,
		Destination:   r.Destination,
		Sev:           r.Sev,
	}
}
