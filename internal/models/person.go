package models

// Person is a subject resolved against the metadata service.
type Person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
