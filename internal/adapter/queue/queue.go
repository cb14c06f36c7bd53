package queue

// MessageQueue is the transport for domain events: emergency alerts,
// command audit events and notification fan-out.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// Subjects published by the assistant services.
const (
	SubjectEmergencyTriggered = "emergency.triggered"
	SubjectCommandHandled     = "assistant.command.handled"
	SubjectFaceEnrolled       = "faces.enrolled"
	SubjectNotifications      = "notifications.events"
)
