package domain

import "time"

// Detection is one object found by the vision sidecar.
type Detection struct {
	Name        string    `json:"name"`
	Confidence  float64   `json:"confidence"`
	BoundingBox []float64 `json:"bounding_box"` // [x1, y1, x2, y2]
	Position    string    `json:"position"`     // left, center, right
}

// TextRegion is one block of text found by the OCR engine.
type TextRegion struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// RecognizedFace is a face match from the face database.
type RecognizedFace struct {
	Name       string  `json:"name"` // empty when unknown
	Confidence float64 `json:"confidence"`
}

// KnownFace is an enrolled person.
type KnownFace struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index"`
	PersonName string    `json:"person_name" gorm:"index"`
	Samples    int       `json:"samples"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SceneDescription is the vision sidecar's narration of a frame.
type SceneDescription struct {
	Description string      `json:"description"`
	Objects     []Detection `json:"objects"`
	Detailed    bool        `json:"detailed"`
}
