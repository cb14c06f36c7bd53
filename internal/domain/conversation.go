package domain

import "time"

// ConversationTurn is one user utterance and the assistant's reply.
type ConversationTurn struct {
	ID                string               `json:"id" gorm:"primaryKey"`
	UserID            string               `json:"user_id" gorm:"index"`
	Utterance         string               `json:"utterance"`
	AssistantResponse string               `json:"assistant_response"`
	Intent            Intent               `json:"intent" gorm:"index"`
	Confidence        float64              `json:"confidence"`
	Source            ClassificationSource `json:"source"`
	CreatedAt         time.Time            `json:"created_at"`
}

func (ConversationTurn) TableName() string { return "conversation_history" }

// SceneMemory stores a past scene description so the assistant can
// answer "what did you see earlier".
type SceneMemory struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index"`
	Description string    `json:"description"`
	Objects     []string  `json:"objects" gorm:"serializer:json"`
	Location    string    `json:"location"`
	ImageHash   string    `json:"image_hash" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
}

// TextExtraction is one OCR pass over a captured frame.
type TextExtraction struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index"`
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at"`
}

// ObjectDetectionLog records a single detected object.
type ObjectDetectionLog struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index"`
	ObjectName  string    `json:"object_name"`
	Confidence  float64   `json:"confidence"`
	BoundingBox string    `json:"bounding_box"` // JSON [x1,y1,x2,y2]
	CreatedAt   time.Time `json:"created_at"`
}

func (ObjectDetectionLog) TableName() string { return "object_detections" }
