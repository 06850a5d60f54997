package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"travelbot/internal/model"
	"travelbot/pkg/logger"
)

var flightNumberRe = regexp.MustCompile(`(?i)\bUA\s?(\d{1,4})\b|\b(\d{3,4})\b`)

// AmenityAgent answers questions about flight features: it looks up the
// flight's amenity row, classifies the question to pick a specialist
// template, and lets the chat model compose the answer over the looked-up
// details. Without a usable model it returns the formatted details directly.
type AmenityAgent struct {
	features map[string]model.FlightFeature
	client   *OpenAIClient
	log      *logger.Logger
}

// NewAmenityAgent creates an amenity agent over the flight feature table
func NewAmenityAgent(features []model.FlightFeature, client *OpenAIClient, log *logger.Logger) *AmenityAgent {
	byNumber := make(map[string]model.FlightFeature, len(features))
	for _, f := range features {
		byNumber[f.FlightNumber] = f
	}
	return &AmenityAgent{
		features: byNumber,
		client:   client,
		log:      log.Named("amenity"),
	}
}

// NormalizeFlightNumber canonicalizes user-supplied flight numbers: bare
// digits become UA + zero-padded four digits.
func NormalizeFlightNumber(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	v = strings.ReplaceAll(v, " ", "")
	digits := strings.TrimPrefix(v, "UA")
	if digits == "" || len(digits) > 4 || strings.Trim(digits, "0123456789") != "" {
		return "", &ValidationError{Field: "flight_number", Reason: "use a format like UA892 or 892"}
	}
	return "UA" + strings.Repeat("0", 4-len(digits)) + digits, nil
}

// Lookup returns the amenity row for a flight number
func (a *AmenityAgent) Lookup(raw string) (*model.FlightFeature, error) {
	number, err := NormalizeFlightNumber(raw)
	if err != nil {
		return nil, err
	}
	f, ok := a.features[number]
	if !ok {
		return nil, ErrNoMatches
	}
	return &f, nil
}

// Answer responds to a free-form question about a flight's amenities
func (a *AmenityAgent) Answer(ctx context.Context, question string) (string, error) {
	number := findFlightNumber(question)
	if number == "" {
		return "", &ValidationError{Field: "flight_number", Reason: "mention a flight number like UA892"}
	}

	feature, err := a.Lookup(number)
	if err != nil {
		return "", err
	}
	details := FormatFeature(feature)

	if a.client == nil || !a.client.IsEnabled() {
		return details, nil
	}

	category := ClassifyQuery(question)
	prompt := TemplateFor(category, question)

	resp, err := a.client.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: "Flight details:\n" + details + "\n\nQuestion: " + question},
		},
	})
	if err != nil {
		// Degrade to the raw lookup rather than failing the request.
		a.log.Warn("amenity completion failed, returning raw details", logger.Error(err))
		return details, nil
	}

	answer, err := resp.CompletionText()
	if err != nil {
		return details, nil
	}
	return answer, nil
}

// findFlightNumber extracts the first flight-number-looking token
func findFlightNumber(question string) string {
	m := flightNumberRe.FindStringSubmatch(question)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return "UA" + m[1]
	}
	return m[2]
}

// FormatFeature renders one amenity row as display text
func FormatFeature(f *model.FlightFeature) string {
	avail := func(b bool) string {
		if b {
			return "Available"
		}
		return "Not Available"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "United Airlines Flight %s\n\n", f.FlightNumber)
	fmt.Fprintf(&sb, "Aircraft & Seating:\n")
	fmt.Fprintf(&sb, "  Aircraft: %s\n", f.AircraftType)
	fmt.Fprintf(&sb, "  Seat Configuration: %s\n", f.SeatConfig)
	fmt.Fprintf(&sb, "  Total Seats: %d\n", f.TotalSeats)
	fmt.Fprintf(&sb, "  Exit Row Seats: %d\n\n", f.NumOfExitRowSeats)
	fmt.Fprintf(&sb, "Connectivity & Power:\n")
	fmt.Fprintf(&sb, "  WiFi: %s\n", avail(f.Wifi))
	fmt.Fprintf(&sb, "  WiFi Pricing: %s\n", f.WifiPriceRange)
	fmt.Fprintf(&sb, "  USB Charging: %s\n", avail(f.USB))
	fmt.Fprintf(&sb, "  Power Outlets: %s\n", avail(f.PowerOutlets))
	fmt.Fprintf(&sb, "  Entertainment: %s\n\n", f.Entertainment)
	fmt.Fprintf(&sb, "Dining & Service:\n")
	fmt.Fprintf(&sb, "  Route Type: %s\n", f.RouteType)
	fmt.Fprintf(&sb, "  Meal Service: %s\n\n", f.MealType)
	fmt.Fprintf(&sb, "Travel Info:\n")
	fmt.Fprintf(&sb, "  Baggage Policy: %s\n", f.BaggagePolicy)
	fmt.Fprintf(&sb, "  Boarding/Lounge: %s\n\n", f.LoungeAccess)
	fmt.Fprintf(&sb, "Notes: %s", f.Notes)
	return sb.String()
}
