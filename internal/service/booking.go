package service

import (
	"net/url"
	"strings"

	"travelbot/internal/model"
)

// External booking surfaces. No network calls are made to these; they are
// emitted as strings for the user to follow.
const (
	bookingBaseURL = "https://www.united.com/en/us/fsr/choose-flights"

	// FallbackFlightSearchLink is offered when no flight matches.
	FallbackFlightSearchLink = "https://www.united.com/en/us/book-flight/united-reservations"

	// FallbackHotelSearchLink is offered when no hotel matches the chosen filter.
	FallbackHotelSearchLink = "https://www.united.com/en/us/fly/mileageplus/partners/hotels.html"

	// CarRentalLink is the static car-rental offer.
	CarRentalLink = "https://cars.united.com/?clientid=569554" +
		"&utm_source=loyalty&utm_medium=uacom" +
		"&utm_campaign=transportpartnerspage" +
		"&utm_content=car_earn#/searchcars"
)

// BookingLinkBuilder serializes confirmed criteria into a deep link to the
// external booking surface.
type BookingLinkBuilder struct{}

// NewBookingLinkBuilder creates a booking link builder
func NewBookingLinkBuilder() *BookingLinkBuilder {
	return &BookingLinkBuilder{}
}

// Build produces the deep link from the frozen criteria and the match set.
// The departure code is the airport code of the first match, falling back to
// the first three characters of the departure city upper-cased.
//
// Only the destination parameter is percent-escaped. The upstream booking
// endpoint has only ever been exercised with this exact shape, so the
// asymmetry is kept as-is rather than uniformed.
func (b *BookingLinkBuilder) Build(c *model.Criteria, matches []model.Flight) string {
	depCode := ""
	if len(matches) > 0 && matches[0].DepartureAirport != "" {
		depCode = matches[0].DepartureAirport
	} else {
		city := c.DepartureCity
		if len(city) > 3 {
			city = city[:3]
		}
		depCode = strings.ToUpper(city)
	}

	params := []struct {
		key    string
		value  string
		escape bool
	}{
		{"f", depCode, false},
		{"t", c.ArrivalCity, true},
		{"d", c.DepartureDate, false},
		{"tt", "1", false},
		{"st", "bestmatches", false},
		{"sc", "7", false},
		{"px", "1", false},
		{"taxng", "1", false},
		{"newHP", "True", false},
		{"clm", "7", false},
		{"tqp", "R", false},
	}

	parts := make([]string, 0, len(params))
	for _, p := range params {
		v := p.value
		if p.escape {
			v = quote(v)
		}
		parts = append(parts, p.key+"="+v)
	}

	return bookingBaseURL + "?" + strings.Join(parts, "&")
}

// quote percent-escapes with %20 for spaces, matching urllib-style quoting
// rather than form encoding.
func quote(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
