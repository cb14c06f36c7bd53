package mocks

import (
	"context"

	"github.com/Khaf-dev/aiforus/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	SaveFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

// MockConversationRepository is a mock implementation of ConversationRepository
type MockConversationRepository struct {
	Saved []domain.ConversationTurn

	SaveFunc             func(ctx context.Context, turn *domain.ConversationTurn) error
	FindByUserIDFunc     func(ctx context.Context, userID string, limit int) ([]domain.ConversationTurn, error)
	FindLastByUserIDFunc func(ctx context.Context, userID string) (*domain.ConversationTurn, error)
}

func (m *MockConversationRepository) Save(ctx context.Context, turn *domain.ConversationTurn) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, turn)
	}
	m.Saved = append(m.Saved, *turn)
	return nil
}

func (m *MockConversationRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]domain.ConversationTurn, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID, limit)
	}
	return []domain.ConversationTurn{}, nil
}

func (m *MockConversationRepository) FindLastByUserID(ctx context.Context, userID string) (*domain.ConversationTurn, error) {
	if m.FindLastByUserIDFunc != nil {
		return m.FindLastByUserIDFunc(ctx, userID)
	}
	if len(m.Saved) > 0 {
		last := m.Saved[len(m.Saved)-1]
		return &last, nil
	}
	return nil, nil
}

// MockSceneMemoryRepository is a mock implementation of SceneMemoryRepository
type MockSceneMemoryRepository struct {
	Saved []domain.SceneMemory

	SaveFunc         func(ctx context.Context, memory *domain.SceneMemory) error
	FindByUserIDFunc func(ctx context.Context, userID string, limit int) ([]domain.SceneMemory, error)
}

func (m *MockSceneMemoryRepository) Save(ctx context.Context, memory *domain.SceneMemory) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, memory)
	}
	m.Saved = append(m.Saved, *memory)
	return nil
}

func (m *MockSceneMemoryRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]domain.SceneMemory, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID, limit)
	}
	return []domain.SceneMemory{}, nil
}

// MockDetectionLogRepository is a mock implementation of DetectionLogRepository
type MockDetectionLogRepository struct {
	TextExtractions  []domain.TextExtraction
	ObjectDetections []domain.ObjectDetectionLog

	SaveTextExtractionFunc   func(ctx context.Context, te *domain.TextExtraction) error
	SaveObjectDetectionFunc  func(ctx context.Context, od *domain.ObjectDetectionLog) error
	FindObjectDetectionsFunc func(ctx context.Context, userID string, limit int) ([]domain.ObjectDetectionLog, error)
}

func (m *MockDetectionLogRepository) SaveTextExtraction(ctx context.Context, te *domain.TextExtraction) error {
	if m.SaveTextExtractionFunc != nil {
		return m.SaveTextExtractionFunc(ctx, te)
	}
	m.TextExtractions = append(m.TextExtractions, *te)
	return nil
}

func (m *MockDetectionLogRepository) SaveObjectDetection(ctx context.Context, od *domain.ObjectDetectionLog) error {
	if m.SaveObjectDetectionFunc != nil {
		return m.SaveObjectDetectionFunc(ctx, od)
	}
	m.ObjectDetections = append(m.ObjectDetections, *od)
	return nil
}

func (m *MockDetectionLogRepository) FindObjectDetections(ctx context.Context, userID string, limit int) ([]domain.ObjectDetectionLog, error) {
	if m.FindObjectDetectionsFunc != nil {
		return m.FindObjectDetectionsFunc(ctx, userID, limit)
	}
	return m.ObjectDetections, nil
}

// MockFaceRepository is a mock implementation of FaceRepository
type MockFaceRepository struct {
	Faces []domain.KnownFace

	SaveFunc         func(ctx context.Context, face *domain.KnownFace) error
	FindByUserIDFunc func(ctx context.Context, userID string) ([]domain.KnownFace, error)
	FindByNameFunc   func(ctx context.Context, userID, personName string) (*domain.KnownFace, error)
	DeleteByNameFunc func(ctx context.Context, userID, personName string) error
}

func (m *MockFaceRepository) Save(ctx context.Context, face *domain.KnownFace) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, face)
	}
	for i := range m.Faces {
		if m.Faces[i].UserID == face.UserID && m.Faces[i].PersonName == face.PersonName {
			m.Faces[i] = *face
			return nil
		}
	}
	m.Faces = append(m.Faces, *face)
	return nil
}

func (m *MockFaceRepository) FindByUserID(ctx context.Context, userID string) ([]domain.KnownFace, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	var out []domain.KnownFace
	for _, f := range m.Faces {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MockFaceRepository) FindByName(ctx context.Context, userID, personName string) (*domain.KnownFace, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, userID, personName)
	}
	for _, f := range m.Faces {
		if f.UserID == userID && f.PersonName == personName {
			face := f
			return &face, nil
		}
	}
	return nil, nil
}

func (m *MockFaceRepository) DeleteByName(ctx context.Context, userID, personName string) error {
	if m.DeleteByNameFunc != nil {
		return m.DeleteByNameFunc(ctx, userID, personName)
	}
	for i, f := range m.Faces {
		if f.UserID == userID && f.PersonName == personName {
			m.Faces = append(m.Faces[:i], m.Faces[i+1:]...)
			return nil
		}
	}
	return nil
}
