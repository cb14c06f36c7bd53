package domain

// Location is a resolved geographic position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
}

// RouteStep is one spoken navigation instruction.
type RouteStep struct {
	Instruction string  `json:"instruction"`
	DistanceM   float64 `json:"distance_m"`
}

// Route is a walking route to a destination.
type Route struct {
	Destination string      `json:"destination"`
	DistanceM   float64     `json:"distance_m"`
	DurationS   float64     `json:"duration_s"`
	Steps       []RouteStep `json:"steps"`
}
