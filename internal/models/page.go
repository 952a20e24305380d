package models

// UserPage is a read-only page of search results.
type UserPage struct {
	TotalPages int    `json:"totalPages"`
	Number     int    `json:"number"`
	Content    []User `json:"content"`
}
