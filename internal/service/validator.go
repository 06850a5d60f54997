package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"travelbot/internal/model"
)

// Per-field normalization rules for the criteria record. Required fields
// reject bad input with a ValidationError (the dialog re-prompts); optional
// fields silently degrade to nil, meaning "no constraint".

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var priceCleaner = strings.NewReplacer("$", "", "€", "", "£", "", ",", "")

// isNullInput reports whether raw input means "no value" for optional fields.
func isNullInput(raw string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	return v == "" || v == "null"
}

// NormalizeCity trims the input; empty input is rejected.
func NormalizeCity(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", &ValidationError{Field: field, Reason: "city must not be empty"}
	}
	return v, nil
}

// NormalizeDate accepts only the canonical YYYY-MM-DD form. Normalization is
// idempotent: a valid date passes through unchanged.
func NormalizeDate(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return "", &ValidationError{Field: model.FieldDepartureDate, Reason: "date must be YYYY-MM-DD"}
	}
	return v, nil
}

// NormalizeTimeOfDay accepts HH:MM 24-hour; anything else means no constraint.
func NormalizeTimeOfDay(raw string) *string {
	v := strings.TrimSpace(raw)
	if !timeOfDayRe.MatchString(v) {
		return nil
	}
	return &v
}

// NormalizePrice strips currency symbols and grouping separators and parses a
// non-negative decimal. Unparsable input drops the constraint.
func NormalizePrice(raw string) *float64 {
	if isNullInput(raw) {
		return nil
	}
	v := strings.TrimSpace(priceCleaner.Replace(raw))
	price, err := strconv.ParseFloat(v, 64)
	if err != nil || price < 0 {
		return nil
	}
	return &price
}

// NormalizeBool maps yes/y/true/t and no/n/false/f case-insensitively;
// anything else means no constraint.
func NormalizeBool(raw string) *bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "yes", "y", "true", "t":
		b := true
		return &b
	case "no", "n", "false", "f":
		b := false
		return &b
	}
	return nil
}

// ApplyField normalizes raw input for the named field and stores it on the
// criteria record. Required fields return a ValidationError on bad input;
// optional fields never fail.
func ApplyField(c *model.Criteria, field, raw string) error {
	switch field {
	case model.FieldDepartureCity:
		v, err := NormalizeCity(field, raw)
		if err != nil {
			return err
		}
		c.DepartureCity = v
	case model.FieldArrivalCity:
		v, err := NormalizeCity(field, raw)
		if err != nil {
			return err
		}
		c.ArrivalCity = v
	case model.FieldDepartureDate:
		v, err := NormalizeDate(raw)
		if err != nil {
			return err
		}
		c.DepartureDate = v
	case model.FieldDepartureTime:
		if isNullInput(raw) {
			c.DepartureTime = nil
		} else {
			c.DepartureTime = NormalizeTimeOfDay(raw)
		}
	case model.FieldArrivalTime:
		if isNullInput(raw) {
			c.ArrivalTime = nil
		} else {
			c.ArrivalTime = NormalizeTimeOfDay(raw)
		}
	case model.FieldMaxPrice:
		c.MaxPrice = NormalizePrice(raw)
	case model.FieldWifiAvailable:
		if isNullInput(raw) {
			c.WifiAvailable = nil
		} else {
			c.WifiAvailable = NormalizeBool(raw)
		}
	case model.FieldDirect:
		if isNullInput(raw) {
			c.Direct = nil
		} else {
			c.Direct = NormalizeBool(raw)
		}
	default:
		return &UnknownFieldError{Field: field}
	}
	return nil
}
