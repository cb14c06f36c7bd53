package mocks

import (
	"context"

	"github.com/Khaf-dev/aiforus/internal/domain"
)

// MockIntentModel is a mock implementation of IntentModel
type MockIntentModel struct {
	ClassifyIntentFunc   func(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error)
	GenerateResponseFunc func(ctx context.Context, query string, turn domain.TurnContext) (string, error)
}

func (m *MockIntentModel) ClassifyIntent(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error) {
	if m.ClassifyIntentFunc != nil {
		return m.ClassifyIntentFunc(ctx, utterance, turn)
	}
	return &domain.ClassificationResult{Intent: domain.IntentUnknown, Source: domain.SourceHostedModel}, nil
}

func (m *MockIntentModel) GenerateResponse(ctx context.Context, query string, turn domain.TurnContext) (string, error) {
	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, query, turn)
	}
	return "", nil
}

// MockInterpreter is a mock implementation of Interpreter
type MockInterpreter struct {
	ClassifyFunc func(ctx context.Context, utterance string, turn domain.TurnContext) domain.ClassificationResult
}

func (m *MockInterpreter) Classify(ctx context.Context, utterance string, turn domain.TurnContext) domain.ClassificationResult {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, utterance, turn)
	}
	return domain.ClassificationResult{Intent: domain.IntentUnknown, Source: domain.SourceNone}
}

// MockVisionGateway is a mock implementation of VisionGateway
type MockVisionGateway struct {
	DescribeSceneFunc  func(ctx context.Context, image []byte, detailed bool) (*domain.SceneDescription, error)
	DetectObjectsFunc  func(ctx context.Context, image []byte) ([]domain.Detection, error)
	ExtractTextFunc    func(ctx context.Context, image []byte) ([]domain.TextRegion, error)
	RecognizeFacesFunc func(ctx context.Context, image []byte) ([]domain.RecognizedFace, error)
	EnrollFaceFunc     func(ctx context.Context, image []byte, personName string) error
	DetectSoundsFunc   func(ctx context.Context, audio []byte) ([]string, error)
}

func (m *MockVisionGateway) DescribeScene(ctx context.Context, image []byte, detailed bool) (*domain.SceneDescription, error) {
	if m.DescribeSceneFunc != nil {
		return m.DescribeSceneFunc(ctx, image, detailed)
	}
	return &domain.SceneDescription{}, nil
}

func (m *MockVisionGateway) DetectObjects(ctx context.Context, image []byte) ([]domain.Detection, error) {
	if m.DetectObjectsFunc != nil {
		return m.DetectObjectsFunc(ctx, image)
	}
	return []domain.Detection{}, nil
}

func (m *MockVisionGateway) ExtractText(ctx context.Context, image []byte) ([]domain.TextRegion, error) {
	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, image)
	}
	return []domain.TextRegion{}, nil
}

func (m *MockVisionGateway) RecognizeFaces(ctx context.Context, image []byte) ([]domain.RecognizedFace, error) {
	if m.RecognizeFacesFunc != nil {
		return m.RecognizeFacesFunc(ctx, image)
	}
	return []domain.RecognizedFace{}, nil
}

func (m *MockVisionGateway) EnrollFace(ctx context.Context, image []byte, personName string) error {
	if m.EnrollFaceFunc != nil {
		return m.EnrollFaceFunc(ctx, image, personName)
	}
	return nil
}

func (m *MockVisionGateway) DetectSounds(ctx context.Context, audio []byte) ([]string, error) {
	if m.DetectSoundsFunc != nil {
		return m.DetectSoundsFunc(ctx, audio)
	}
	return []string{}, nil
}

// MockVisionService is a mock implementation of VisionService
type MockVisionService struct {
	DescribeSceneFunc   func(ctx context.Context, userID string, image []byte, detailed bool) (string, error)
	IdentifyObjectsFunc func(ctx context.Context, userID string, image []byte) ([]domain.Detection, error)
	ReadTextFunc        func(ctx context.Context, userID string, image []byte) ([]domain.TextRegion, error)
	RecognizeFacesFunc  func(ctx context.Context, userID string, image []byte) ([]domain.RecognizedFace, error)
	EnrollFaceFunc      func(ctx context.Context, userID string, image []byte, personName string) error
	ListFacesFunc       func(ctx context.Context, userID string) ([]domain.KnownFace, error)
	ForgetFaceFunc      func(ctx context.Context, userID, personName string) error
	DetectSoundsFunc    func(ctx context.Context, userID string, audio []byte) ([]string, error)
}

func (m *MockVisionService) DescribeScene(ctx context.Context, userID string, image []byte, detailed bool) (string, error) {
	if m.DescribeSceneFunc != nil {
		return m.DescribeSceneFunc(ctx, userID, image, detailed)
	}
	return "", nil
}

func (m *MockVisionService) IdentifyObjects(ctx context.Context, userID string, image []byte) ([]domain.Detection, error) {
	if m.IdentifyObjectsFunc != nil {
		return m.IdentifyObjectsFunc(ctx, userID, image)
	}
	return []domain.Detection{}, nil
}

func (m *MockVisionService) ReadText(ctx context.Context, userID string, image []byte) ([]domain.TextRegion, error) {
	if m.ReadTextFunc != nil {
		return m.ReadTextFunc(ctx, userID, image)
	}
	return []domain.TextRegion{}, nil
}

func (m *MockVisionService) RecognizeFaces(ctx context.Context, userID string, image []byte) ([]domain.RecognizedFace, error) {
	if m.RecognizeFacesFunc != nil {
		return m.RecognizeFacesFunc(ctx, userID, image)
	}
	return []domain.RecognizedFace{}, nil
}

func (m *MockVisionService) EnrollFace(ctx context.Context, userID string, image []byte, personName string) error {
	if m.EnrollFaceFunc != nil {
		return m.EnrollFaceFunc(ctx, userID, image, personName)
	}
	return nil
}

func (m *MockVisionService) ListFaces(ctx context.Context, userID string) ([]domain.KnownFace, error) {
	if m.ListFacesFunc != nil {
		return m.ListFacesFunc(ctx, userID)
	}
	return []domain.KnownFace{}, nil
}

func (m *MockVisionService) ForgetFace(ctx context.Context, userID, personName string) error {
	if m.ForgetFaceFunc != nil {
		return m.ForgetFaceFunc(ctx, userID, personName)
	}
	return nil
}

func (m *MockVisionService) DetectSounds(ctx context.Context, userID string, audio []byte) ([]string, error) {
	if m.DetectSoundsFunc != nil {
		return m.DetectSoundsFunc(ctx, userID, audio)
	}
	return []string{}, nil
}

// MockNavigationService is a mock implementation of NavigationService
type MockNavigationService struct {
	CurrentLocationFunc func(ctx context.Context) (*domain.Location, error)
	DirectionsFunc      func(ctx context.Context, from *domain.Location, destination string) (*domain.Route, error)
}

func (m *MockNavigationService) CurrentLocation(ctx context.Context) (*domain.Location, error) {
	if m.CurrentLocationFunc != nil {
		return m.CurrentLocationFunc(ctx)
	}
	return &domain.Location{}, nil
}

func (m *MockNavigationService) Directions(ctx context.Context, from *domain.Location, destination string) (*domain.Route, error) {
	if m.DirectionsFunc != nil {
		return m.DirectionsFunc(ctx, from, destination)
	}
	return &domain.Route{Destination: destination}, nil
}

// MockEmergencyService is a mock implementation of EmergencyService
type MockEmergencyService struct {
	TriggerFunc func(ctx context.Context, userID string) (string, error)
	Triggered   int
}

func (m *MockEmergencyService) Trigger(ctx context.Context, userID string) (string, error) {
	m.Triggered++
	if m.TriggerFunc != nil {
		return m.TriggerFunc(ctx, userID)
	}
	return "Emergency alert sent.", nil
}

// MockEmailSender is a mock implementation of notification.EmailSender
type MockEmailSender struct {
	SendFunc func(to, subject, body string) error
	Sent     []string
}

func (m *MockEmailSender) Send(to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, body)
	}
	m.Sent = append(m.Sent, to)
	return nil
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	LoginFunc         func(ctx context.Context, email, password string) (string, string, error)
	RegisterFunc      func(ctx context.Context, user *domain.User) error
	RefreshTokenFunc  func(ctx context.Context, refreshToken string) (string, error)
	ValidateTokenFunc func(ctx context.Context, token string) (*domain.User, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "access-token", "refresh-token", nil
}

func (m *MockAuthService) Register(ctx context.Context, user *domain.User) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, user)
	}
	return nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return "access-token", nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return &domain.User{ID: "user-1"}, nil
}

// MockAssistantService is a mock implementation of AssistantService
type MockAssistantService struct {
	HandleCommandFunc func(ctx context.Context, userID string, input domain.CommandInput) (*domain.AssistantReply, error)
	HistoryFunc       func(ctx context.Context, userID string, limit int) ([]domain.ConversationTurn, error)
}

func (m *MockAssistantService) HandleCommand(ctx context.Context, userID string, input domain.CommandInput) (*domain.AssistantReply, error) {
	if m.HandleCommandFunc != nil {
		return m.HandleCommandFunc(ctx, userID, input)
	}
	return &domain.AssistantReply{Text: "Okay."}, nil
}

func (m *MockAssistantService) History(ctx context.Context, userID string, limit int) ([]domain.ConversationTurn, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID, limit)
	}
	return nil, nil
}

// MockTranscriber is a mock implementation of Transcriber
type MockTranscriber struct {
	ConnectFunc                func(ctx context.Context) error
	SendAudioChunkFunc         func(ctx context.Context, audio []byte) error
	ReceiveFinalTranscriptFunc func(ctx context.Context) (string, error)
	CloseFunc                  func() error
}

func (m *MockTranscriber) Connect(ctx context.Context) error {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}
	return nil
}

func (m *MockTranscriber) SendAudioChunk(ctx context.Context, audio []byte) error {
	if m.SendAudioChunkFunc != nil {
		return m.SendAudioChunkFunc(ctx, audio)
	}
	return nil
}

func (m *MockTranscriber) ReceiveFinalTranscript(ctx context.Context) (string, error) {
	if m.ReceiveFinalTranscriptFunc != nil {
		return m.ReceiveFinalTranscriptFunc(ctx)
	}
	return "", context.Canceled
}

func (m *MockTranscriber) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
