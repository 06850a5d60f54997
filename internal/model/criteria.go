package model

// Field names of the criteria record, in prompt order.
const (
	FieldDepartureCity = "departure_city"
	FieldArrivalCity   = "arrival_city"
	FieldDepartureDate = "departure_date"
	FieldDepartureTime = "departure_time"
	FieldArrivalTime   = "arrival_time"
	FieldMaxPrice      = "max_price"
	FieldWifiAvailable = "wifi_available"
	FieldDirect        = "direct"
)

// RequiredFields must be non-null before the record can be filtered.
var RequiredFields = []string{FieldDepartureCity, FieldArrivalCity, FieldDepartureDate}

// OptionalFields default to nil, meaning "no constraint".
var OptionalFields = []string{FieldDepartureTime, FieldArrivalTime, FieldMaxPrice, FieldWifiAvailable, FieldDirect}

// Criteria is the evolving flight query collected from the user.
// Required fields are empty strings until filled; optional fields are
// pointer-typed and stay nil when the user expresses no preference.
type Criteria struct {
	DepartureCity string   `json:"departure_city"`
	ArrivalCity   string   `json:"arrival_city"`
	DepartureDate string   `json:"departure_date"`
	DepartureTime *string  `json:"departure_time"`
	ArrivalTime   *string  `json:"arrival_time"`
	MaxPrice      *float64 `json:"max_price"`
	WifiAvailable *bool    `json:"wifi_available"`
	Direct        *bool    `json:"direct"`
}

// Complete reports whether all required fields hold a value.
func (c *Criteria) Complete() bool {
	return c.DepartureCity != "" && c.ArrivalCity != "" && c.DepartureDate != ""
}

// RequiredValue returns the current value of a required field.
func (c *Criteria) RequiredValue(field string) string {
	switch field {
	case FieldDepartureCity:
		return c.DepartureCity
	case FieldArrivalCity:
		return c.ArrivalCity
	case FieldDepartureDate:
		return c.DepartureDate
	}
	return ""
}

// OptionalSet reports whether an optional field already holds a value.
func (c *Criteria) OptionalSet(field string) bool {
	switch field {
	case FieldDepartureTime:
		return c.DepartureTime != nil
	case FieldArrivalTime:
		return c.ArrivalTime != nil
	case FieldMaxPrice:
		return c.MaxPrice != nil
	case FieldWifiAvailable:
		return c.WifiAvailable != nil
	case FieldDirect:
		return c.Direct != nil
	}
	return false
}

// IsKnownField reports whether name is an editable criteria field.
func IsKnownField(name string) bool {
	for _, f := range RequiredFields {
		if f == name {
			return true
		}
	}
	for _, f := range OptionalFields {
		if f == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so a frozen record can't be mutated through
// aliased pointers.
func (c *Criteria) Clone() *Criteria {
	out := &Criteria{
		DepartureCity: c.DepartureCity,
		ArrivalCity:   c.ArrivalCity,
		DepartureDate: c.DepartureDate,
	}
	if c.DepartureTime != nil {
		v := *c.DepartureTime
		out.DepartureTime = &v
	}
	if c.ArrivalTime != nil {
		v := *c.ArrivalTime
		out.ArrivalTime = &v
	}
	if c.MaxPrice != nil {
		v := *c.MaxPrice
		out.MaxPrice = &v
	}
	if c.WifiAvailable != nil {
		v := *c.WifiAvailable
		out.WifiAvailable = &v
	}
	if c.Direct != nil {
		v := *c.Direct
		out.Direct = &v
	}
	return out
}
