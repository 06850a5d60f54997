package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"travelbot/internal/model"
)

// The reference tables are loaded once at startup and shared read-only
// across sessions, so no synchronization is needed afterwards.

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// LoadFlights reads the flight reference table from a CSV file
func LoadFlights(path string) ([]model.Flight, error) {
	var flights []model.Flight
	err := readCSV(path, func(row row) error {
		departure, err := row.timestamp("departure_time")
		if err != nil {
			return err
		}
		arrival, err := row.timestamp("arrival_time")
		if err != nil {
			return err
		}
		price, err := row.float("price_usd")
		if err != nil {
			return err
		}
		flights = append(flights, model.Flight{
			FlightNumber:     row.get("flight_number"),
			DepartureCity:    row.get("departure_city"),
			ArrivalCity:      row.get("arrival_city"),
			DepartureTime:    departure,
			ArrivalTime:      arrival,
			PriceUSD:         price,
			WifiAvailable:    row.boolean("wifi_available"),
			Direct:           row.boolean("direct"),
			DepartureAirport: row.get("departure_airport"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load flights from %s: %w", path, err)
	}
	return flights, nil
}

// LoadHotels reads the hotel reference table from a CSV file
func LoadHotels(path string) ([]model.Hotel, error) {
	var hotels []model.Hotel
	err := readCSV(path, func(row row) error {
		hotels = append(hotels, model.Hotel{
			Name:  row.get("hotel_name"),
			Brand: row.get("hotel_brand"),
			Grade: row.get("hotel_grade"),
			Link:  row.get("hotel_link"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load hotels from %s: %w", path, err)
	}
	return hotels, nil
}

// LoadFlightFeatures reads the flight amenity table from a CSV file
func LoadFlightFeatures(path string) ([]model.FlightFeature, error) {
	var features []model.FlightFeature
	err := readCSV(path, func(row row) error {
		totalSeats, err := row.integer("total_seats")
		if err != nil {
			return err
		}
		exitRows, err := row.integer("num_of_exit_row_seats")
		if err != nil {
			return err
		}
		features = append(features, model.FlightFeature{
			FlightNumber:      row.get("flight_number"),
			AircraftType:      row.get("aircraft_type"),
			SeatConfig:        row.get("seat_config"),
			TotalSeats:        totalSeats,
			NumOfExitRowSeats: exitRows,
			Wifi:              row.boolean("wifi"),
			WifiPriceRange:    row.get("wifi_price_range"),
			USB:               row.boolean("usb"),
			PowerOutlets:      row.boolean("power_outlets"),
			Entertainment:     row.get("entertainment"),
			RouteType:         row.get("route_type"),
			MealType:          row.get("meal_type"),
			BaggagePolicy:     row.get("baggage_policy"),
			LoungeAccess:      row.get("lounge_access"),
			Notes:             row.get("notes"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load flight features from %s: %w", path, err)
	}
	return features, nil
}

// row is one CSV record with header-based field access
type row struct {
	header map[string]int
	values []string
	line   int
}

func (r row) get(column string) string {
	idx, ok := r.header[column]
	if !ok || idx >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[idx])
}

func (r row) float(column string) (float64, error) {
	v, err := strconv.ParseFloat(r.get(column), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: bad %s: %w", r.line, column, err)
	}
	return v, nil
}

func (r row) integer(column string) (int, error) {
	v, err := strconv.Atoi(r.get(column))
	if err != nil {
		return 0, fmt.Errorf("row %d: bad %s: %w", r.line, column, err)
	}
	return v, nil
}

// boolean accepts true/false, 1/0 and yes/no in any case; anything else is
// false.
func (r row) boolean(column string) bool {
	switch strings.ToLower(r.get(column)) {
	case "true", "t", "1", "yes", "y":
		return true
	}
	return false
}

func (r row) timestamp(column string) (time.Time, error) {
	raw := r.get(column)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("row %d: bad %s: unrecognized timestamp %q", r.line, column, raw)
}

// readCSV streams records to fn, exposing them via header-based lookup
func readCSV(path string, fn func(row) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	headerRecord, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	header := make(map[string]int, len(headerRecord))
	for i, name := range headerRecord {
		header[strings.TrimSpace(strings.ToLower(name))] = i
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("row %d: %w", line+1, err)
		}
		line++
		if err := fn(row{header: header, values: record, line: line}); err != nil {
			return err
		}
	}
}
