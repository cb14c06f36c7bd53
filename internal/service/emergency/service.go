package emergency

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/adapter/external/notification"
	"github.com/Khaf-dev/aiforus/internal/adapter/queue"
	"github.com/Khaf-dev/aiforus/internal/observability/telemetry"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

// Service alerts a user's emergency contacts by email and publishes
// the alert for any other consumer (dashboards, SMS bridges).
type Service struct {
	users      ports.UserRepository
	navigation ports.NavigationService
	sender     notification.EmailSender
	mq         queue.MessageQueue
	log        *zap.Logger
}

func NewService(
	users ports.UserRepository,
	navigation ports.NavigationService,
	sender notification.EmailSender,
	mq queue.MessageQueue,
	log *zap.Logger,
) ports.EmergencyService {
	return &Service{
		users:      users,
		navigation: navigation,
		sender:     sender,
		mq:         mq,
		log:        log,
	}
}

// Trigger notifies every configured contact. It returns a spoken
// confirmation even when only some deliveries succeed; a user in
// distress must not be left waiting on retries.
func (s *Service) Trigger(ctx context.Context, userID string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("emergency: load user: %w", err)
	}
	if user == nil {
		return "", fmt.Errorf("emergency: user %s not found", userID)
	}

	locationLine := "Location unknown."
	var lat, lon float64
	if loc, err := s.navigation.CurrentLocation(ctx); err == nil {
		lat, lon = loc.Latitude, loc.Longitude
		locationLine = fmt.Sprintf("Approximate location: %s, %s (%.5f, %.5f).",
			loc.City, loc.Country, loc.Latitude, loc.Longitude)
	} else {
		s.log.Warn("Could not resolve location for emergency alert", zap.Error(err))
	}

	subject := fmt.Sprintf("Emergency alert from %s", user.Name)
	body := fmt.Sprintf(
		"%s triggered an emergency alert at %s.\n%s\nPlease try to reach them immediately.",
		user.Name, time.Now().Format(time.RFC1123), locationLine)

	delivered := 0
	for _, contact := range user.EmergencyContacts {
		if err := s.sender.Send(contact, subject, body); err != nil {
			s.log.Error("Failed to deliver emergency alert",
				zap.String("contact", contact), zap.Error(err))
			continue
		}
		delivered++
	}

	telemetry.EmergencyAlertsTotal.Inc()

	event, _ := json.Marshal(map[string]interface{}{
		"user_id":   userID,
		"contacts":  len(user.EmergencyContacts),
		"delivered": delivered,
		"latitude":  lat,
		"longitude": lon,
		"at":        time.Now().UTC().Format(time.RFC3339),
	})
	if err := s.mq.Publish(queue.SubjectEmergencyTriggered, event); err != nil {
		s.log.Error("Failed to publish emergency event", zap.Error(err))
	}

	if len(user.EmergencyContacts) == 0 {
		return "Emergency noted, but you have no emergency contacts configured.", nil
	}
	if delivered == 0 {
		return "", fmt.Errorf("emergency: no alert could be delivered")
	}
	return fmt.Sprintf("Emergency alert sent to %d of your contacts. Help is on the way.", delivered), nil
}
