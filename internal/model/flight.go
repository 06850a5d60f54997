package model

import "time"

// Flight is one row of the flights reference table. Immutable after load.
type Flight struct {
	FlightNumber     string    `json:"flight_number"`
	DepartureCity    string    `json:"departure_city"`
	ArrivalCity      string    `json:"arrival_city"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	PriceUSD         float64   `json:"price_usd"`
	WifiAvailable    bool      `json:"wifi_available"`
	Direct           bool      `json:"direct"`
	DepartureAirport string    `json:"departure_airport"`
}

// FlightFeature is one row of the flight amenity reference table,
// keyed by flight number.
type FlightFeature struct {
	FlightNumber      string `json:"flight_number"`
	AircraftType      string `json:"aircraft_type"`
	SeatConfig        string `json:"seat_config"`
	TotalSeats        int    `json:"total_seats"`
	NumOfExitRowSeats int    `json:"num_of_exit_row_seats"`
	Wifi              bool   `json:"wifi"`
	WifiPriceRange    string `json:"wifi_price_range"`
	USB               bool   `json:"usb"`
	PowerOutlets      bool   `json:"power_outlets"`
	Entertainment     string `json:"entertainment"`
	RouteType         string `json:"route_type"`
	MealType          string `json:"meal_type"`
	BaggagePolicy     string `json:"baggage_policy"`
	LoungeAccess      string `json:"lounge_access"`
	Notes             string `json:"notes"`
}
