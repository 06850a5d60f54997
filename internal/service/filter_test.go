package service

import (
	"testing"
	"time"

	"travelbot/internal/model"
)

func ptr[T any](v T) *T { return &v }

func testFlights() []model.Flight {
	mk := func(number, dep, arr, depTime, arrTime string, price float64, wifi, direct bool) model.Flight {
		depTS, _ := time.Parse("2006-01-02 15:04", depTime)
		arrTS, _ := time.Parse("2006-01-02 15:04", arrTime)
		return model.Flight{
			FlightNumber:     number,
			DepartureCity:    dep,
			ArrivalCity:      arr,
			DepartureTime:    depTS,
			ArrivalTime:      arrTS,
			PriceUSD:         price,
			WifiAvailable:    wifi,
			Direct:           direct,
			DepartureAirport: "ORD",
		}
	}
	return []model.Flight{
		mk("UA0100", "Chicago", "Denver", "2024-07-04 08:30", "2024-07-04 10:05", 250, true, true),
		mk("UA0101", "Chicago", "Denver", "2024-07-04 13:00", "2024-07-04 14:40", 180, false, true),
		mk("UA0102", "Chicago", "Denver", "2024-07-05 08:30", "2024-07-05 10:05", 199, true, false),
		mk("UA0103", "Chicago", "Austin", "2024-07-04 09:15", "2024-07-04 12:00", 220, true, true),
		mk("UA0104", "Newark", "Denver", "2024-07-04 07:00", "2024-07-04 09:45", 310, true, true),
	}
}

func TestFilterRequiredPredicates(t *testing.T) {
	engine := NewFlightFilterEngine(testFlights())

	matches := engine.Filter(&model.Criteria{
		DepartureCity: "Chicago",
		ArrivalCity:   "Denver",
		DepartureDate: "2024-07-04",
	})

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	// Natural row order is preserved.
	if matches[0].FlightNumber != "UA0100" || matches[1].FlightNumber != "UA0101" {
		t.Errorf("wrong order: %s, %s", matches[0].FlightNumber, matches[1].FlightNumber)
	}
}

func TestFilterCitiesAreCaseSensitive(t *testing.T) {
	engine := NewFlightFilterEngine(testFlights())

	matches := engine.Filter(&model.Criteria{
		DepartureCity: "chicago",
		ArrivalCity:   "Denver",
		DepartureDate: "2024-07-04",
	})
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0 for non-canonical casing", len(matches))
	}
}

func TestFilterOptionalPredicates(t *testing.T) {
	engine := NewFlightFilterEngine(testFlights())
	base := model.Criteria{
		DepartureCity: "Chicago",
		ArrivalCity:   "Denver",
		DepartureDate: "2024-07-04",
	}

	tests := []struct {
		name        string
		modify      func(c *model.Criteria)
		wantNumbers []string
	}{
		{
			"departure time exact",
			func(c *model.Criteria) { c.DepartureTime = ptr("08:30") },
			[]string{"UA0100"},
		},
		{
			"arrival time exact",
			func(c *model.Criteria) { c.ArrivalTime = ptr("14:40") },
			[]string{"UA0101"},
		},
		{
			"max price is inclusive",
			func(c *model.Criteria) { c.MaxPrice = ptr(180.0) },
			[]string{"UA0101"},
		},
		{
			"max price below cheapest",
			func(c *model.Criteria) { c.MaxPrice = ptr(100.0) },
			nil,
		},
		{
			"wifi required",
			func(c *model.Criteria) { c.WifiAvailable = ptr(true) },
			[]string{"UA0100"},
		},
		{
			"wifi explicitly not wanted",
			func(c *model.Criteria) { c.WifiAvailable = ptr(false) },
			[]string{"UA0101"},
		},
		{
			"all constraints together",
			func(c *model.Criteria) {
				c.DepartureTime = ptr("08:30")
				c.MaxPrice = ptr(300.0)
				c.WifiAvailable = ptr(true)
				c.Direct = ptr(true)
			},
			[]string{"UA0100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.modify(&c)
			matches := engine.Filter(&c)
			if len(matches) != len(tt.wantNumbers) {
				t.Fatalf("got %d matches, want %d", len(matches), len(tt.wantNumbers))
			}
			for i, want := range tt.wantNumbers {
				if matches[i].FlightNumber != want {
					t.Errorf("match %d = %s, want %s", i, matches[i].FlightNumber, want)
				}
			}
		})
	}
}

func TestFilterMaxPriceMonotonic(t *testing.T) {
	engine := NewFlightFilterEngine(testFlights())
	base := model.Criteria{
		DepartureCity: "Chicago",
		ArrivalCity:   "Denver",
		DepartureDate: "2024-07-04",
	}

	// Raising the cap can only grow the match set.
	prev := -1
	for _, limit := range []float64{100, 180, 200, 250, 1000} {
		c := base
		c.MaxPrice = ptr(limit)
		n := len(engine.Filter(&c))
		if n < prev {
			t.Fatalf("match count shrank from %d to %d when cap rose to %v", prev, n, limit)
		}
		prev = n
	}
}

func TestFilterEmptyResultIsNotNil(t *testing.T) {
	engine := NewFlightFilterEngine(testFlights())
	matches := engine.Filter(&model.Criteria{
		DepartureCity: "Nowhere",
		ArrivalCity:   "Denver",
		DepartureDate: "2024-07-04",
	})
	if matches == nil {
		t.Error("empty match set should be non-nil")
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}
