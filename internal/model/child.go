package model

// Child is a household member who earns and spends points.
type Child struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Points int    `json:"points"`
}

// Category groups tasks for display and filtering.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
