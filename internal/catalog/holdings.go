package catalog

import "strings"

const (
	statusAvailable   = "available"
	statusUnavailable = "unavailable"
	statusUnknown     = "unknown"

	unknownLocation = "Unknown"
)

var holdingsKeys = []string{"holdings", "availability", "buildings"}

// ExtractAvailability derives aggregate and per-location availability from
// whichever holdings encoding the payload carries. The first key present of
// holdings, availability, buildings is used exclusively; sources are never
// merged. With no holdings-bearing key the top-level availableCount and
// totalCount are the fallback, and with none of those the result is nil —
// the upstream said nothing, which is not the same as a confirmed zero.
// The available<=total invariant is not enforced: a malformed payload keeps
// its upstream sums.
func ExtractAvailability(raw map[string]any) *Availability {
	if raw == nil {
		return nil
	}
	for _, key := range holdingsKeys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		items := toList(v)
		agg := &Availability{Locations: make([]Location, 0, len(items))}
		for _, it := range items {
			loc, total := extractLocation(it)
			agg.Available += loc.Available
			agg.Total += total
			agg.Locations = append(agg.Locations, loc)
		}
		return agg
	}

	av, avOK := intValue(raw["availableCount"])
	tot, totOK := intValue(raw["totalCount"])
	if avOK || totOK {
		return &Availability{Available: av, Total: tot, Locations: []Location{}}
	}
	return nil
}

// extractLocation reduces one holding element to a Location plus the copy
// count it contributes to the aggregate total.
func extractLocation(v any) (Location, int) {
	m, ok := v.(map[string]any)
	if !ok {
		// a bare element, e.g. a buildings list of names
		name := stringifyVariant(v, "translated", "value", "name")
		if name == "" {
			name = unknownLocation
		}
		return Location{Location: name, Status: statusUnavailable}, 1
	}

	loc := Location{
		Location:   locationName(m),
		CallNumber: stringifyVariant(m["callNumber"]),
		DueDate:    stringifyVariant(m["dueDate"]),
	}

	status := stringifyVariant(firstPresent(m["status"], m["availability"]), "translated", "value")
	if n, ok := intValue(m["available"]); ok {
		loc.Available = n
	} else if strings.EqualFold(status, statusAvailable) {
		loc.Available = 1
	}

	total := 1
	if n, ok := intValue(firstPresent(m["total"], m["count"])); ok {
		total = n
	}

	switch {
	case status != "":
		loc.Status = status
	case loc.Available > 0:
		loc.Status = statusAvailable
	default:
		loc.Status = statusUnavailable
	}
	return loc, total
}

func locationName(m map[string]any) string {
	name := stringifyVariant(
		firstPresent(m["location"], m["branch"], m["building"], m["name"]),
		"translated", "value", "name")
	if name == "" {
		return unknownLocation
	}
	return name
}

// ExtractHoldings flattens the holdings key alone into the display-oriented
// holdings list. The three-key availability fallback does not apply here.
func ExtractHoldings(raw map[string]any) []Holding {
	if raw == nil {
		return []Holding{}
	}
	items := toList(raw["holdings"])
	out := make([]Holding, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			if name := stringifyVariant(it); name != "" {
				out = append(out, Holding{Location: name, Status: statusUnknown})
			}
			continue
		}
		h := Holding{
			Location:   locationName(m),
			CallNumber: stringifyVariant(m["callNumber"]),
			Status:     stringifyVariant(firstPresent(m["status"], m["availability"]), "translated", "value"),
			DueDate:    stringifyVariant(m["dueDate"]),
		}
		if h.Status == "" {
			h.Status = statusUnknown
		}
		out = append(out, h)
	}
	return out
}
