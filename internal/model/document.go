package model

// Document is one retrievable chunk in a FAQ or loyalty document table
type Document struct {
	ID       int64   `json:"id" db:"id"`
	Content  string  `json:"content" db:"content"`
	Source   string  `json:"source,omitempty" db:"source"`
	Distance float64 `json:"distance,omitempty" db:"distance"`
}
