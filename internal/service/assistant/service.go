package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/adapter/queue"
	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/observability/telemetry"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

// Service is the dispatch loop: it classifies each utterance and
// routes the resolved intent to the owning collaborator. Every turn is
// recorded in conversation history regardless of outcome.
type Service struct {
	interpreter ports.Interpreter
	vision      ports.VisionService
	navigation  ports.NavigationService
	emergency   ports.EmergencyService
	model       ports.IntentModel // nil when the hosted model is disabled
	users       ports.UserRepository
	turns       ports.ConversationRepository
	mq          queue.MessageQueue
	log         *zap.Logger
}

func NewService(
	interpreter ports.Interpreter,
	vision ports.VisionService,
	navigation ports.NavigationService,
	emergency ports.EmergencyService,
	model ports.IntentModel,
	users ports.UserRepository,
	turns ports.ConversationRepository,
	mq queue.MessageQueue,
	log *zap.Logger,
) ports.AssistantService {
	return &Service{
		interpreter: interpreter,
		vision:      vision,
		navigation:  navigation,
		emergency:   emergency,
		model:       model,
		users:       users,
		turns:       turns,
		mq:          mq,
		log:         log,
	}
}

// HandleCommand executes one turn. Collaborator failures degrade to a
// spoken apology rather than an error; only missing-user lookups and
// context cancellation surface to the transport layer.
func (s *Service) HandleCommand(ctx context.Context, userID string, input domain.CommandInput) (*domain.AssistantReply, error) {
	turn, err := s.buildTurnContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := s.interpreter.Classify(ctx, input.Utterance, turn)

	s.log.Info("Command classified",
		zap.String("user_id", userID),
		zap.String("intent", string(result.Intent)),
		zap.Float64("confidence", result.Confidence),
		zap.String("source", string(result.Source)),
	)

	reply := s.dispatch(ctx, userID, input, turn, result)
	reply.Intent = result.Intent
	reply.Confidence = result.Confidence
	reply.Source = result.Source

	s.recordTurn(ctx, userID, input.Utterance, reply)

	status := "ok"
	if reply.Text == "" {
		status = "empty"
	}
	telemetry.CommandsHandled.WithLabelValues(string(result.Intent), status).Inc()

	return reply, nil
}

func (s *Service) History(ctx context.Context, userID string, limit int) ([]domain.ConversationTurn, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.turns.FindByUserID(ctx, userID, limit)
}

// dispatch is the exhaustive intent switch. Every domain.Intent value
// must have a case here.
func (s *Service) dispatch(ctx context.Context, userID string, input domain.CommandInput, turn domain.TurnContext, result domain.ClassificationResult) *domain.AssistantReply {
	switch result.Intent {
	case domain.IntentDescribeScene:
		return s.handleDescribeScene(ctx, userID, input, result)
	case domain.IntentReadText:
		return s.handleReadText(ctx, userID, input)
	case domain.IntentDetectObjects:
		return s.handleDetectObjects(ctx, userID, input)
	case domain.IntentRecognizeFaces:
		return s.handleRecognizeFaces(ctx, userID, input)
	case domain.IntentEnrollFace:
		return s.handleEnrollFace(ctx, userID, input, result)
	case domain.IntentListFaces:
		return s.handleListFaces(ctx, userID)
	case domain.IntentDetectSound:
		return s.handleDetectSound(ctx, userID, input)
	case domain.IntentNavigate:
		return s.handleNavigate(ctx, result)
	case domain.IntentEmergency:
		return s.handleEmergency(ctx, userID)
	case domain.IntentChangeLanguage:
		return s.handleChangeLanguage(ctx, userID, result)
	case domain.IntentGeneralQuestion:
		return s.handleGeneralQuestion(ctx, input.Utterance, turn, result)
	case domain.IntentExit:
		return &domain.AssistantReply{Text: "Goodbye. Stay safe.", ShouldExit: true}
	case domain.IntentUnknown:
		return &domain.AssistantReply{Text: "I didn't understand that. You can ask me to describe the scene, read text, or recognize faces."}
	}
	// Unreachable while ParseIntent gates the set.
	return &domain.AssistantReply{Text: "I didn't understand that."}
}

func (s *Service) handleDescribeScene(ctx context.Context, userID string, input domain.CommandInput, result domain.ClassificationResult) *domain.AssistantReply {
	if len(input.Frame) == 0 {
		return &domain.AssistantReply{Text: "I need the camera to describe what's around you."}
	}
	detailed, _ := result.Parameters["detailed"].(bool)
	description, err := s.vision.DescribeScene(ctx, userID, input.Frame, detailed)
	if err != nil {
		return s.apologize("describe the scene", err)
	}
	return &domain.AssistantReply{Text: description}
}

func (s *Service) handleReadText(ctx context.Context, userID string, input domain.CommandInput) *domain.AssistantReply {
	if len(input.Frame) == 0 {
		return &domain.AssistantReply{Text: "I need the camera to read text for you."}
	}
	regions, err := s.vision.ReadText(ctx, userID, input.Frame)
	if err != nil {
		return s.apologize("read the text", err)
	}
	if len(regions) == 0 {
		return &domain.AssistantReply{Text: "I don't see any text here."}
	}
	lines := make([]string, 0, len(regions))
	for _, r := range regions {
		lines = append(lines, r.Text)
	}
	return &domain.AssistantReply{Text: "It says: " + strings.Join(lines, ". ")}
}

func (s *Service) handleDetectObjects(ctx context.Context, userID string, input domain.CommandInput) *domain.AssistantReply {
	if len(input.Frame) == 0 {
		return &domain.AssistantReply{Text: "I need the camera to look for objects."}
	}
	detections, err := s.vision.IdentifyObjects(ctx, userID, input.Frame)
	if err != nil {
		return s.apologize("detect objects", err)
	}
	if len(detections) == 0 {
		return &domain.AssistantReply{Text: "I don't see any objects I can name."}
	}
	parts := make([]string, 0, len(detections))
	for _, d := range detections {
		if d.Position != "" {
			parts = append(parts, fmt.Sprintf("a %s on your %s", d.Name, d.Position))
		} else {
			parts = append(parts, "a "+d.Name)
		}
	}
	return &domain.AssistantReply{Text: "I can see " + joinSpoken(parts) + "."}
}

func (s *Service) handleRecognizeFaces(ctx context.Context, userID string, input domain.CommandInput) *domain.AssistantReply {
	if len(input.Frame) == 0 {
		return &domain.AssistantReply{Text: "I need the camera to look for people."}
	}
	faces, err := s.vision.RecognizeFaces(ctx, userID, input.Frame)
	if err != nil {
		return s.apologize("recognize faces", err)
	}
	if len(faces) == 0 {
		return &domain.AssistantReply{Text: "I don't see anyone right now."}
	}
	known := make([]string, 0, len(faces))
	unknown := 0
	for _, f := range faces {
		if f.Name == "" {
			unknown++
			continue
		}
		known = append(known, f.Name)
	}
	var sb strings.Builder
	if len(known) > 0 {
		sb.WriteString("I can see " + joinSpoken(known))
	}
	if unknown > 0 {
		if sb.Len() > 0 {
			sb.WriteString(", and ")
		} else {
			sb.WriteString("I can see ")
		}
		if unknown == 1 {
			sb.WriteString("one person I don't recognize")
		} else {
			fmt.Fprintf(&sb, "%d people I don't recognize", unknown)
		}
	}
	sb.WriteString(".")
	return &domain.AssistantReply{Text: sb.String()}
}

func (s *Service) handleEnrollFace(ctx context.Context, userID string, input domain.CommandInput, result domain.ClassificationResult) *domain.AssistantReply {
	name, _ := result.Parameters["person_name"].(string)
	if name == "" {
		return &domain.AssistantReply{Text: "Whose face should I remember? Say something like: remember this person is Anna."}
	}
	if len(input.Frame) == 0 {
		return &domain.AssistantReply{Text: "I need the camera pointed at " + name + " to remember their face."}
	}
	if err := s.vision.EnrollFace(ctx, userID, input.Frame, name); err != nil {
		return s.apologize("remember that face", err)
	}
	return &domain.AssistantReply{Text: "Got it. I'll remember " + name + " from now on."}
}

func (s *Service) handleListFaces(ctx context.Context, userID string) *domain.AssistantReply {
	faces, err := s.vision.ListFaces(ctx, userID)
	if err != nil {
		return s.apologize("check who I know", err)
	}
	if len(faces) == 0 {
		return &domain.AssistantReply{Text: "I don't know anyone yet. Show me someone and tell me their name."}
	}
	names := make([]string, 0, len(faces))
	for _, f := range faces {
		names = append(names, f.PersonName)
	}
	return &domain.AssistantReply{Text: "I know " + joinSpoken(names) + "."}
}

func (s *Service) handleDetectSound(ctx context.Context, userID string, input domain.CommandInput) *domain.AssistantReply {
	if len(input.Audio) == 0 {
		return &domain.AssistantReply{Text: "I need a moment of audio to listen. Try again."}
	}
	sounds, err := s.vision.DetectSounds(ctx, userID, input.Audio)
	if err != nil {
		return s.apologize("listen", err)
	}
	if len(sounds) == 0 {
		return &domain.AssistantReply{Text: "It sounds quiet right now."}
	}
	return &domain.AssistantReply{Text: "I can hear " + joinSpoken(sounds) + "."}
}

func (s *Service) handleNavigate(ctx context.Context, result domain.ClassificationResult) *domain.AssistantReply {
	destination, _ := result.Parameters["destination"].(string)
	if destination == "" {
		return &domain.AssistantReply{Text: "Where would you like to go?"}
	}
	origin, err := s.navigation.CurrentLocation(ctx)
	if err != nil {
		return s.apologize("find your location", err)
	}
	route, err := s.navigation.Directions(ctx, origin, destination)
	if err != nil {
		return &domain.AssistantReply{Text: "I couldn't find a route to " + destination + "."}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "It's about %s away, roughly %s on foot. ",
		spokenDistance(route.DistanceM), spokenDuration(route.DurationS))
	// Speak at most the first few steps; the rest would overload the
	// listener.
	max := 3
	if len(route.Steps) < max {
		max = len(route.Steps)
	}
	for i := 0; i < max; i++ {
		step := route.Steps[i]
		if step.DistanceM >= 10 {
			fmt.Fprintf(&sb, "%s for %s. ", step.Instruction, spokenDistance(step.DistanceM))
		} else {
			sb.WriteString(step.Instruction + ". ")
		}
	}
	return &domain.AssistantReply{Text: strings.TrimSpace(sb.String())}
}

func (s *Service) handleEmergency(ctx context.Context, userID string) *domain.AssistantReply {
	confirmation, err := s.emergency.Trigger(ctx, userID)
	if err != nil {
		s.log.Error("Emergency trigger failed", zap.String("user_id", userID), zap.Error(err))
		return &domain.AssistantReply{Text: "I couldn't reach your emergency contacts. Please call for help directly."}
	}
	return &domain.AssistantReply{Text: confirmation}
}

func (s *Service) handleChangeLanguage(ctx context.Context, userID string, result domain.ClassificationResult) *domain.AssistantReply {
	code, _ := result.Parameters["language"].(string)
	if code == "" {
		return &domain.AssistantReply{Text: "Which language would you like?"}
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return s.apologize("change the language", err)
	}
	user.Language = code
	if err := s.users.Save(ctx, user); err != nil {
		return s.apologize("change the language", err)
	}
	name := languageName(code)
	return &domain.AssistantReply{Text: "Okay, I'll speak " + name + " from now on."}
}

func (s *Service) handleGeneralQuestion(ctx context.Context, utterance string, turn domain.TurnContext, result domain.ClassificationResult) *domain.AssistantReply {
	query, _ := result.Parameters["query"].(string)
	if query == "" {
		query = utterance
	}
	if s.model == nil {
		return &domain.AssistantReply{Text: "I can't answer general questions right now, but I can describe your surroundings, read text, or recognize faces."}
	}
	answer, err := s.model.GenerateResponse(ctx, query, turn)
	if err != nil {
		s.log.Warn("General question answering failed", zap.Error(err))
		return &domain.AssistantReply{Text: "I couldn't find an answer to that right now."}
	}
	return &domain.AssistantReply{Text: answer}
}

func (s *Service) apologize(action string, err error) *domain.AssistantReply {
	if err != nil {
		s.log.Warn("Handler failed", zap.String("action", action), zap.Error(err))
	}
	return &domain.AssistantReply{Text: "Sorry, I couldn't " + action + " right now."}
}

func (s *Service) buildTurnContext(ctx context.Context, userID string) (domain.TurnContext, error) {
	turn := domain.TurnContext{Language: "en"}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return turn, fmt.Errorf("assistant: load user: %w", err)
	}
	if user == nil {
		return turn, fmt.Errorf("assistant: user %s not found", userID)
	}
	if user.Language != "" {
		turn.Language = user.Language
	}

	if last, err := s.turns.FindLastByUserID(ctx, userID); err == nil && last != nil {
		turn.LastIntent = last.Intent
	}
	return turn, nil
}

func (s *Service) recordTurn(ctx context.Context, userID, utterance string, reply *domain.AssistantReply) {
	entry := &domain.ConversationTurn{
		ID:                uuid.New().String(),
		UserID:            userID,
		Utterance:         utterance,
		AssistantResponse: reply.Text,
		Intent:            reply.Intent,
		Confidence:        reply.Confidence,
		Source:            reply.Source,
		CreatedAt:         time.Now(),
	}
	if err := s.turns.Save(ctx, entry); err != nil {
		s.log.Error("Failed to save conversation turn", zap.Error(err))
	}

	event, _ := json.Marshal(map[string]interface{}{
		"user_id":    userID,
		"intent":     reply.Intent,
		"confidence": reply.Confidence,
		"source":     reply.Source,
	})
	if err := s.mq.Publish(queue.SubjectCommandHandled, event); err != nil {
		s.log.Warn("Failed to publish command event", zap.Error(err))
	}
}

// joinSpoken renders a list the way a person would say it:
// "a, b and c".
func joinSpoken(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func spokenDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f kilometers", meters/1000)
	}
	return fmt.Sprintf("%.0f meters", meters)
}

func spokenDuration(seconds float64) string {
	minutes := int(seconds / 60)
	if minutes < 1 {
		return "less than a minute"
	}
	if minutes == 1 {
		return "one minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

var spokenLanguageNames = map[string]string{
	"en": "English",
	"id": "Indonesian",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"pt": "Portuguese",
	"zh": "Chinese",
	"ja": "Japanese",
	"ar": "Arabic",
	"hi": "Hindi",
}

func languageName(code string) string {
	if name, ok := spokenLanguageNames[code]; ok {
		return name
	}
	return code
}
