package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	departuresHeader = "**Abfahrt**  **Linie**  **Ziel**\n"
	linesDelimiter   = ", "
)

// RenderDepartures renders a departure list as a table-like text block:
// wall-clock time, line label (capitalized product code + raw label) and
// destination. Pure; loc controls the wall clock.
func RenderDepartures(deps []Departure, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(departuresHeader)
	for _, d := range deps {
		depTime := time.UnixMilli(d.DepartureTime).In(loc).Format("15:04")
		b.WriteString(depTime)
		b.WriteString("  ")
		b.WriteString(capitalize(d.Product))
		b.WriteString(d.Label)
		b.WriteString("   ")
		b.WriteString(d.Destination)
		b.WriteString("\n")
	}
	return b.String()
}

// StationTitle returns "<name> <markers> (<distance>m)", e.g.
// "Marienplatz SU (120m)".
func StationTitle(st Station) string {
	var markers strings.Builder
	for _, p := range st.Products {
		markers.WriteString(p.TitlePrefix())
	}
	return fmt.Sprintf("%s %s (%dm)", st.Name, markers.String(), st.DistanceMeters)
}

// LinesSummary returns all lines serving a station as a comma-joined
// string of prefixed labels ("U6, U3, T19, 54"). Labels are deduplicated
// within each product group.
func LinesSummary(st Station) string {
	var b strings.Builder
	for _, group := range st.Lines {
		seen := make(map[string]struct{}, len(group.Labels))
		for _, label := range group.Labels {
			if _, dup := seen[label]; dup {
				continue
			}
			seen[label] = struct{}{}
			b.WriteString(group.Product.SummaryPrefix())
			b.WriteString(label)
			b.WriteString(linesDelimiter)
		}
	}
	return strings.TrimSuffix(b.String(), linesDelimiter)
}

// capitalize upper-cases the first byte and lower-cases the rest, matching
// the display form of upstream product codes ("u" -> "U").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
