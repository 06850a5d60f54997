package model

// Hotel is one row of the hotels reference table. Immutable after load.
type Hotel struct {
	Name  string `json:"hotel_name"`
	Brand string `json:"hotel_brand"`
	Grade string `json:"hotel_grade"`
	Link  string `json:"hotel_link"`
}
