package service

import (
	"travelbot/internal/model"
)

// FlightFilterEngine applies a frozen criteria record against the flight
// reference table. All predicates are conjunctive and applied in a fixed
// order; results keep the table's natural row order and are never ranked.
type FlightFilterEngine struct {
	flights []model.Flight
}

// NewFlightFilterEngine creates a filter engine over the loaded flight table
func NewFlightFilterEngine(flights []model.Flight) *FlightFilterEngine {
	return &FlightFilterEngine{flights: flights}
}

// Filter computes the match set for the given criteria. An empty match set is
// a valid outcome, not an error.
func (e *FlightFilterEngine) Filter(c *model.Criteria) []model.Flight {
	matches := make([]model.Flight, 0)

	for _, f := range e.flights {
		// Required predicates: cities are exact, case-sensitive matches; the
		// calendar date of departure must equal the requested date.
		if f.DepartureCity != c.DepartureCity {
			continue
		}
		if f.ArrivalCity != c.ArrivalCity {
			continue
		}
		if f.DepartureTime.Format("2006-01-02") != c.DepartureDate {
			continue
		}

		// Optional predicates: nil means no constraint.
		if c.DepartureTime != nil && f.DepartureTime.Format("15:04") != *c.DepartureTime {
			continue
		}
		if c.ArrivalTime != nil && f.ArrivalTime.Format("15:04") != *c.ArrivalTime {
			continue
		}
		if c.MaxPrice != nil && f.PriceUSD > *c.MaxPrice {
			continue
		}
		if c.WifiAvailable != nil && f.WifiAvailable != *c.WifiAvailable {
			continue
		}
		if c.Direct != nil && f.Direct != *c.Direct {
			continue
		}

		matches = append(matches, f)
	}

	return matches
}
