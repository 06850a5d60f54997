package repository

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadFlights(t *testing.T) {
	path := writeTempCSV(t, "flights.csv", `flight_number,departure_city,arrival_city,departure_time,arrival_time,price_usd,wifi_available,direct,departure_airport
UA0100,Chicago,Denver,2024-07-04 08:30:00,2024-07-04 10:05:00,250.00,True,True,ORD
UA0101,Chicago,Denver,2024-07-04 13:00,2024-07-04 14:40,180,false,1,ORD
`)

	flights, err := LoadFlights(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flights) != 2 {
		t.Fatalf("got %d flights, want 2", len(flights))
	}

	f := flights[0]
	if f.FlightNumber != "UA0100" || f.DepartureCity != "Chicago" || f.ArrivalCity != "Denver" {
		t.Errorf("unexpected flight %+v", f)
	}
	if f.DepartureTime.Format("2006-01-02 15:04") != "2024-07-04 08:30" {
		t.Errorf("DepartureTime = %v", f.DepartureTime)
	}
	if f.PriceUSD != 250 {
		t.Errorf("PriceUSD = %v, want 250", f.PriceUSD)
	}
	if !f.WifiAvailable || !f.Direct {
		t.Errorf("booleans not parsed: wifi=%v direct=%v", f.WifiAvailable, f.Direct)
	}

	// Mixed timestamp layouts and boolean spellings in the second row.
	if flights[1].DepartureTime.Format("15:04") != "13:00" {
		t.Errorf("DepartureTime = %v", flights[1].DepartureTime)
	}
	if flights[1].WifiAvailable || !flights[1].Direct {
		t.Errorf("booleans not parsed: wifi=%v direct=%v", flights[1].WifiAvailable, flights[1].Direct)
	}
}

func TestLoadFlightsBadTimestamp(t *testing.T) {
	path := writeTempCSV(t, "flights.csv", `flight_number,departure_city,arrival_city,departure_time,arrival_time,price_usd,wifi_available,direct,departure_airport
UA0100,Chicago,Denver,yesterday,2024-07-04 10:05:00,250.00,True,True,ORD
`)

	if _, err := LoadFlights(path); err == nil {
		t.Fatal("expected error for unparsable timestamp")
	}
}

func TestLoadFlightsMissingFile(t *testing.T) {
	if _, err := LoadFlights(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadHotels(t *testing.T) {
	path := writeTempCSV(t, "hotels.csv", `hotel_name,hotel_brand,hotel_grade,hotel_link
Grand Hyatt Denver,Hyatt,4,https://example.com/h1
 Hyatt Place , Hyatt ,3,https://example.com/h2
`)

	hotels, err := LoadHotels(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hotels) != 2 {
		t.Fatalf("got %d hotels, want 2", len(hotels))
	}
	if hotels[0].Name != "Grand Hyatt Denver" || hotels[0].Grade != "4" {
		t.Errorf("unexpected hotel %+v", hotels[0])
	}
	// Cell whitespace is trimmed.
	if hotels[1].Name != "Hyatt Place" || hotels[1].Brand != "Hyatt" {
		t.Errorf("whitespace not trimmed: %+v", hotels[1])
	}
}

func TestLoadFlightFeatures(t *testing.T) {
	path := writeTempCSV(t, "features.csv", `flight_number,aircraft_type,seat_config,total_seats,num_of_exit_row_seats,wifi,wifi_price_range,usb,power_outlets,entertainment,route_type,meal_type,baggage_policy,lounge_access,notes
UA0892,Boeing 787-9,3-3-3,257,12,true,$8-$12,true,true,Seatback screens,International,Full meal service,2 free checked bags,Polaris lounge,Long-haul
`)

	features, err := LoadFlightFeatures(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(features) != 1 {
		t.Fatalf("got %d features, want 1", len(features))
	}

	f := features[0]
	if f.FlightNumber != "UA0892" || f.TotalSeats != 257 || f.NumOfExitRowSeats != 12 {
		t.Errorf("unexpected feature %+v", f)
	}
	if !f.Wifi || f.WifiPriceRange != "$8-$12" {
		t.Errorf("wifi fields not parsed: %+v", f)
	}
}

func TestLoadFlightFeaturesHeaderCaseInsensitive(t *testing.T) {
	path := writeTempCSV(t, "features.csv", `Flight_Number,Aircraft_Type,Seat_Config,Total_Seats,Num_Of_Exit_Row_Seats,Wifi,Wifi_Price_Range,USB,Power_Outlets,Entertainment,Route_Type,Meal_Type,Baggage_Policy,Lounge_Access,Notes
UA0892,Boeing 787-9,3-3-3,257,12,true,$8-$12,true,true,Seatback screens,International,Full meal service,2 free checked bags,Polaris lounge,Long-haul
`)

	features, err := LoadFlightFeatures(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if features[0].FlightNumber != "UA0892" {
		t.Errorf("header lookup should be case-insensitive, got %+v", features[0])
	}
}
