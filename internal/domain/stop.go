package domain

import "strings"

// Represents one delivery destination.
// Location is nil while the stop's address has not been resolved to a point.
// Payload is carried through route planning unchanged.
type Stop struct {
	ID       string
	Location *GeoPoint
	Payload  StopPayload
}

// Caller-owned order details attached to a stop.
type StopPayload struct {
	CustomerName string
	Address      string
	City         string
	Items        []string
	Amount       float64
}

func (s Stop) HasLocation() bool { return s.Location != nil }

// GeocodeQuery is the free-text query used to resolve the stop's location.
func (s Stop) GeocodeQuery() string {
	parts := make([]string, 0, 2)
	if a := strings.TrimSpace(s.Payload.Address); a != "" {
		parts = append(parts, a)
	}
	if c := strings.TrimSpace(s.Payload.City); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, ", ")
}

// WithLocation returns a copy of the stop positioned at p.
func (s Stop) WithLocation(p GeoPoint) Stop {
	s.Location = &p
	return s
}
