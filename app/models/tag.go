package models

// Tag is a label attached to photos, referenced by id in search filters.
type Tag struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
