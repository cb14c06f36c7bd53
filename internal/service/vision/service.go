package vision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/adapter/queue"
	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

// Service layers persistence, caching and eventing over the raw
// vision gateway. Brief scene descriptions are cached by frame hash so
// continuous mode does not re-run inference on an unchanged view.
type Service struct {
	gateway  ports.VisionGateway
	scenes   ports.SceneMemoryRepository
	logs     ports.DetectionLogRepository
	faces    ports.FaceRepository
	cache    ports.Cache
	mq       queue.MessageQueue
	sceneTTL time.Duration
	log      *zap.Logger
}

func NewService(
	gateway ports.VisionGateway,
	scenes ports.SceneMemoryRepository,
	logs ports.DetectionLogRepository,
	faces ports.FaceRepository,
	cache ports.Cache,
	mq queue.MessageQueue,
	sceneTTL time.Duration,
	log *zap.Logger,
) ports.VisionService {
	if sceneTTL <= 0 {
		sceneTTL = 30 * time.Second
	}
	return &Service{
		gateway:  gateway,
		scenes:   scenes,
		logs:     logs,
		faces:    faces,
		cache:    cache,
		mq:       mq,
		sceneTTL: sceneTTL,
		log:      log,
	}
}

func (s *Service) DescribeScene(ctx context.Context, userID string, image []byte, detailed bool) (string, error) {
	hash := frameHash(image)

	if !detailed {
		cacheKey := "scene:" + hash
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			return cached, nil
		}
	}

	scene, err := s.gateway.DescribeScene(ctx, image, detailed)
	if err != nil {
		return "", fmt.Errorf("describe scene: %w", err)
	}

	objects := make([]string, 0, len(scene.Objects))
	for _, obj := range scene.Objects {
		objects = append(objects, obj.Name)
	}

	memory := &domain.SceneMemory{
		ID:          uuid.New().String(),
		UserID:      userID,
		Description: scene.Description,
		Objects:     objects,
		ImageHash:   hash,
		CreatedAt:   time.Now(),
	}
	if err := s.scenes.Save(ctx, memory); err != nil {
		s.log.Warn("Failed to persist scene memory", zap.Error(err))
	}

	if !detailed {
		if err := s.cache.Set(ctx, "scene:"+hash, scene.Description, s.sceneTTL); err != nil {
			s.log.Warn("Failed to cache scene description", zap.Error(err))
		}
	}

	return scene.Description, nil
}

func (s *Service) IdentifyObjects(ctx context.Context, userID string, image []byte) ([]domain.Detection, error) {
	detections, err := s.gateway.DetectObjects(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("detect objects: %w", err)
	}

	for _, det := range detections {
		box, _ := json.Marshal(det.BoundingBox)
		entry := &domain.ObjectDetectionLog{
			ID:          uuid.New().String(),
			UserID:      userID,
			ObjectName:  det.Name,
			Confidence:  det.Confidence,
			BoundingBox: string(box),
			CreatedAt:   time.Now(),
		}
		if err := s.logs.SaveObjectDetection(ctx, entry); err != nil {
			s.log.Warn("Failed to log object detection", zap.Error(err))
		}
	}

	return detections, nil
}

func (s *Service) ReadText(ctx context.Context, userID string, image []byte) ([]domain.TextRegion, error) {
	regions, err := s.gateway.ExtractText(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	for _, region := range regions {
		entry := &domain.TextExtraction{
			ID:         uuid.New().String(),
			UserID:     userID,
			Text:       region.Text,
			Confidence: region.Confidence,
			Language:   region.Language,
			CreatedAt:  time.Now(),
		}
		if err := s.logs.SaveTextExtraction(ctx, entry); err != nil {
			s.log.Warn("Failed to log text extraction", zap.Error(err))
		}
	}

	return regions, nil
}

func (s *Service) RecognizeFaces(ctx context.Context, userID string, image []byte) ([]domain.RecognizedFace, error) {
	faces, err := s.gateway.RecognizeFaces(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("recognize faces: %w", err)
	}
	return faces, nil
}

func (s *Service) EnrollFace(ctx context.Context, userID string, image []byte, personName string) error {
	if personName == "" {
		return fmt.Errorf("enroll face: person name is required")
	}

	if err := s.gateway.EnrollFace(ctx, image, personName); err != nil {
		return fmt.Errorf("enroll face: %w", err)
	}

	face, err := s.faces.FindByName(ctx, userID, personName)
	if err != nil {
		return err
	}
	now := time.Now()
	if face == nil {
		face = &domain.KnownFace{
			ID:         uuid.New().String(),
			UserID:     userID,
			PersonName: personName,
			CreatedAt:  now,
		}
	}
	face.Samples++
	face.UpdatedAt = now
	if err := s.faces.Save(ctx, face); err != nil {
		return err
	}

	event, _ := json.Marshal(map[string]string{"user_id": userID, "person_name": personName})
	if err := s.mq.Publish(queue.SubjectFaceEnrolled, event); err != nil {
		s.log.Warn("Failed to publish face enrolled event", zap.Error(err))
	}

	return nil
}

func (s *Service) ListFaces(ctx context.Context, userID string) ([]domain.KnownFace, error) {
	return s.faces.FindByUserID(ctx, userID)
}

func (s *Service) ForgetFace(ctx context.Context, userID, personName string) error {
	return s.faces.DeleteByName(ctx, userID, personName)
}

func (s *Service) DetectSounds(ctx context.Context, userID string, audio []byte) ([]string, error) {
	sounds, err := s.gateway.DetectSounds(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("detect sounds: %w", err)
	}
	return sounds, nil
}

func frameHash(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}
