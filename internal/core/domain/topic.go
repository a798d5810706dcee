package domain

// Topic is read-only reference data used to categorise quotes.
type Topic struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
