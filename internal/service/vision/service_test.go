package vision

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/adapter/queue"
	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService(gateway *mocks.MockVisionGateway, scenes *mocks.MockSceneMemoryRepository,
	logs *mocks.MockDetectionLogRepository, faces *mocks.MockFaceRepository,
	mq *mocks.MockMessageQueue) *Service {
	svc := NewService(gateway, scenes, logs, faces, mocks.NewMockCache(), mq,
		30*time.Second, newTestLogger())
	return svc.(*Service)
}

func TestDescribeScene_SavesSceneMemory(t *testing.T) {
	// Arrange
	gateway := &mocks.MockVisionGateway{
		DescribeSceneFunc: func(ctx context.Context, image []byte, detailed bool) (*domain.SceneDescription, error) {
			return &domain.SceneDescription{
				Description: "A desk with a laptop.",
				Objects:     []domain.Detection{{Name: "laptop", Confidence: 0.98}},
			}, nil
		},
	}
	scenes := &mocks.MockSceneMemoryRepository{}
	svc := newTestService(gateway, scenes, &mocks.MockDetectionLogRepository{},
		&mocks.MockFaceRepository{}, mocks.NewMockMessageQueue())

	// Act
	description, err := svc.DescribeScene(context.Background(), "user-1", []byte{0xFF, 0xD8}, false)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if description != "A desk with a laptop." {
		t.Errorf("unexpected description: %q", description)
	}
	if len(scenes.Saved) != 1 {
		t.Fatalf("expected one scene memory, got %d", len(scenes.Saved))
	}
	if scenes.Saved[0].ImageHash == "" {
		t.Error("expected image hash on scene memory")
	}
	if len(scenes.Saved[0].Objects) != 1 || scenes.Saved[0].Objects[0] != "laptop" {
		t.Errorf("expected object names recorded, got %v", scenes.Saved[0].Objects)
	}
}

func TestDescribeScene_BriefResultIsCached(t *testing.T) {
	// Arrange
	calls := 0
	gateway := &mocks.MockVisionGateway{
		DescribeSceneFunc: func(ctx context.Context, image []byte, detailed bool) (*domain.SceneDescription, error) {
			calls++
			return &domain.SceneDescription{Description: "A hallway."}, nil
		},
	}
	svc := newTestService(gateway, &mocks.MockSceneMemoryRepository{},
		&mocks.MockDetectionLogRepository{}, &mocks.MockFaceRepository{}, mocks.NewMockMessageQueue())
	frame := []byte{0x01, 0x02, 0x03}

	// Act
	_, err1 := svc.DescribeScene(context.Background(), "user-1", frame, false)
	_, err2 := svc.DescribeScene(context.Background(), "user-1", frame, false)

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("expected no errors, got %v / %v", err1, err2)
	}
	if calls != 1 {
		t.Errorf("expected one gateway call for an unchanged frame, got %d", calls)
	}
}

func TestIdentifyObjects_LogsEachDetection(t *testing.T) {
	// Arrange
	gateway := &mocks.MockVisionGateway{
		DetectObjectsFunc: func(ctx context.Context, image []byte) ([]domain.Detection, error) {
			return []domain.Detection{
				{Name: "chair", Confidence: 0.91},
				{Name: "door", Confidence: 0.85},
			}, nil
		},
	}
	logs := &mocks.MockDetectionLogRepository{}
	svc := newTestService(gateway, &mocks.MockSceneMemoryRepository{}, logs,
		&mocks.MockFaceRepository{}, mocks.NewMockMessageQueue())

	// Act
	detections, err := svc.IdentifyObjects(context.Background(), "user-1", []byte{0xFF})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(detections) != 2 {
		t.Errorf("expected two detections, got %d", len(detections))
	}
	if len(logs.ObjectDetections) != 2 {
		t.Errorf("expected two log entries, got %d", len(logs.ObjectDetections))
	}
}

func TestEnrollFace_TracksKnownFaceAndPublishes(t *testing.T) {
	// Arrange
	gateway := &mocks.MockVisionGateway{}
	faces := &mocks.MockFaceRepository{}
	mq := mocks.NewMockMessageQueue()
	svc := newTestService(gateway, &mocks.MockSceneMemoryRepository{},
		&mocks.MockDetectionLogRepository{}, faces, mq)

	// Act
	err := svc.EnrollFace(context.Background(), "user-1", []byte{0xFF}, "John")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(faces.Faces) != 1 {
		t.Fatalf("expected one known face, got %d", len(faces.Faces))
	}
	if faces.Faces[0].PersonName != "John" || faces.Faces[0].Samples != 1 {
		t.Errorf("unexpected face record: %+v", faces.Faces[0])
	}
	if len(mq.GetPublishedMessages(queue.SubjectFaceEnrolled)) != 1 {
		t.Error("expected face enrolled event published")
	}
}

func TestEnrollFace_SecondSampleIncrementsCount(t *testing.T) {
	// Arrange
	faces := &mocks.MockFaceRepository{}
	svc := newTestService(&mocks.MockVisionGateway{}, &mocks.MockSceneMemoryRepository{},
		&mocks.MockDetectionLogRepository{}, faces, mocks.NewMockMessageQueue())

	// Act
	_ = svc.EnrollFace(context.Background(), "user-1", []byte{0x01}, "John")
	err := svc.EnrollFace(context.Background(), "user-1", []byte{0x02}, "John")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(faces.Faces) != 1 {
		t.Fatalf("expected a single face record, got %d", len(faces.Faces))
	}
	if faces.Faces[0].Samples != 2 {
		t.Errorf("expected two samples, got %d", faces.Faces[0].Samples)
	}
}

func TestEnrollFace_RequiresName(t *testing.T) {
	// Arrange
	svc := newTestService(&mocks.MockVisionGateway{}, &mocks.MockSceneMemoryRepository{},
		&mocks.MockDetectionLogRepository{}, &mocks.MockFaceRepository{}, mocks.NewMockMessageQueue())

	// Act
	err := svc.EnrollFace(context.Background(), "user-1", []byte{0xFF}, "")

	// Assert
	if err == nil {
		t.Fatal("expected error for missing name, got nil")
	}
}
