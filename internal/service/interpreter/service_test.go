package interpreter

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newLocalOnlyService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(nil, DefaultKeywordTable(), Config{}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return svc
}

func TestNewService_EmptyTable(t *testing.T) {
	// Act
	_, err := NewService(nil, nil, Config{}, newTestLogger())

	// Assert
	if err == nil {
		t.Fatal("expected error for empty keyword table, got nil")
	}
}

func TestNewService_InvalidIntentInTable(t *testing.T) {
	// Arrange
	table := []KeywordEntry{
		{Intent: domain.Intent("teleport"), Phrases: []string{"beam me up"}},
	}

	// Act
	_, err := NewService(nil, table, Config{}, newTestLogger())

	// Assert
	if err == nil {
		t.Fatal("expected error for invalid intent, got nil")
	}
}

func TestNewService_EmptyPhrase(t *testing.T) {
	// Arrange
	table := []KeywordEntry{
		{Intent: domain.IntentExit, Phrases: []string{"   "}},
	}

	// Act
	_, err := NewService(nil, table, Config{}, newTestLogger())

	// Assert
	if err == nil {
		t.Fatal("expected error for empty phrase, got nil")
	}
}

func TestClassify_ExactMatchConfidence(t *testing.T) {
	// Arrange
	svc := newLocalOnlyService(t)

	// Act
	result := svc.Classify(context.Background(), "Describe the scene, please.", domain.TurnContext{})

	// Assert
	if result.Intent != domain.IntentDescribeScene {
		t.Errorf("expected describe_scene, got %s", result.Intent)
	}
	if result.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %f", result.Confidence)
	}
	if result.Source != domain.SourceLocalKeyword {
		t.Errorf("expected source local_keyword, got %s", result.Source)
	}
}

func TestClassify_NoMatchReturnsUnknown(t *testing.T) {
	// Arrange
	svc := newLocalOnlyService(t)

	// Act
	result := svc.Classify(context.Background(), "florble gorp zibzab", domain.TurnContext{})

	// Assert
	if result.Intent != domain.IntentUnknown {
		t.Errorf("expected unknown, got %s", result.Intent)
	}
	if result.Confidence != 0 {
		t.Errorf("expected confidence 0, got %f", result.Confidence)
	}
	if result.Source != domain.SourceNone {
		t.Errorf("expected source none, got %s", result.Source)
	}
	if result.Parameters == nil {
		t.Error("expected non-nil parameters map")
	}
}

func TestClassify_SpecificPhraseShadowsGenericWord(t *testing.T) {
	// Arrange
	svc := newLocalOnlyService(t)

	cases := []struct {
		utterance string
		want      domain.Intent
	}{
		{"what do you hear", domain.IntentDetectSound},
		{"who do you know", domain.IntentListFaces},
		{"what do you see", domain.IntentDescribeScene},
		{"what does it say", domain.IntentReadText},
		{"who is this", domain.IntentRecognizeFaces},
		{"what time is it", domain.IntentGeneralQuestion},
	}

	for _, tc := range cases {
		// Act
		result := svc.Classify(context.Background(), tc.utterance, domain.TurnContext{})

		// Assert
		if result.Intent != tc.want {
			t.Errorf("%q: expected %s, got %s", tc.utterance, tc.want, result.Intent)
		}
	}
}

func TestClassify_FuzzyMatchConfidence(t *testing.T) {
	// Arrange
	svc := newLocalOnlyService(t)

	// "reading the text" only matches after stemming "reading" to "read".
	// Act
	result := svc.Classify(context.Background(), "reading the text", domain.TurnContext{})

	// Assert
	if result.Intent != domain.IntentReadText {
		t.Fatalf("expected read_text, got %s", result.Intent)
	}
	if result.Confidence != 0.6 {
		t.Errorf("expected confidence 0.6, got %f", result.Confidence)
	}
	if result.Source != domain.SourceLocalKeyword {
		t.Errorf("expected source local_keyword, got %s", result.Source)
	}
}

func TestClassify_ConfiguredConfidences(t *testing.T) {
	// Arrange
	svc, err := NewService(nil, DefaultKeywordTable(), Config{
		ExactMatchConfidence: 0.9,
		FuzzyMatchConfidence: 0.4,
	}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	exact := svc.Classify(context.Background(), "describe the scene", domain.TurnContext{})
	fuzzy := svc.Classify(context.Background(), "reading the text", domain.TurnContext{})

	// Assert
	if exact.Confidence != 0.9 {
		t.Errorf("expected exact confidence 0.9, got %f", exact.Confidence)
	}
	if fuzzy.Confidence != 0.4 {
		t.Errorf("expected fuzzy confidence 0.4, got %f", fuzzy.Confidence)
	}
}

func TestClassify_HostedModelAccepted(t *testing.T) {
	// Arrange
	model := &mocks.MockIntentModel{
		ClassifyIntentFunc: func(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error) {
			return &domain.ClassificationResult{
				Intent:     domain.IntentNavigate,
				Parameters: map[string]interface{}{"destination": "central station"},
				Confidence: 0.92,
			}, nil
		},
	}
	svc, err := NewService(model, DefaultKeywordTable(), Config{}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	result := svc.Classify(context.Background(), "I'd like to get to the station", domain.TurnContext{})

	// Assert
	if result.Intent != domain.IntentNavigate {
		t.Errorf("expected navigate, got %s", result.Intent)
	}
	if result.Source != domain.SourceHostedModel {
		t.Errorf("expected source hosted_model, got %s", result.Source)
	}
	if result.Confidence != 0.92 {
		t.Errorf("expected confidence 0.92, got %f", result.Confidence)
	}
	if result.Parameters["destination"] != "central station" {
		t.Errorf("expected destination parameter, got %v", result.Parameters)
	}
}

func TestClassify_HostedModelErrorFallsBack(t *testing.T) {
	// Arrange
	model := &mocks.MockIntentModel{
		ClassifyIntentFunc: func(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	svc, err := NewService(model, DefaultKeywordTable(), Config{}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	result := svc.Classify(context.Background(), "describe the scene", domain.TurnContext{})

	// Assert
	if result.Intent != domain.IntentDescribeScene {
		t.Errorf("expected describe_scene from fallback, got %s", result.Intent)
	}
	if result.Source != domain.SourceLocalKeyword {
		t.Errorf("expected source local_keyword, got %s", result.Source)
	}
}

func TestClassify_HostedModelOutOfSetIntentFallsBack(t *testing.T) {
	// Arrange
	model := &mocks.MockIntentModel{
		ClassifyIntentFunc: func(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error) {
			return &domain.ClassificationResult{Intent: domain.Intent("make_coffee"), Confidence: 0.99}, nil
		},
	}
	svc, err := NewService(model, DefaultKeywordTable(), Config{}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	result := svc.Classify(context.Background(), "read this", domain.TurnContext{})

	// Assert
	if result.Intent != domain.IntentReadText {
		t.Errorf("expected read_text from fallback, got %s", result.Intent)
	}
	if result.Source != domain.SourceLocalKeyword {
		t.Errorf("expected source local_keyword, got %s", result.Source)
	}
}

func TestClassify_HostedModelBelowThresholdFallsBack(t *testing.T) {
	// Arrange
	model := &mocks.MockIntentModel{
		ClassifyIntentFunc: func(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error) {
			return &domain.ClassificationResult{Intent: domain.IntentEmergency, Confidence: 0.3}, nil
		},
	}
	svc, err := NewService(model, DefaultKeywordTable(), Config{AcceptThreshold: 0.5}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	result := svc.Classify(context.Background(), "describe the scene", domain.TurnContext{})

	// Assert
	if result.Intent != domain.IntentDescribeScene {
		t.Errorf("expected describe_scene from fallback, got %s", result.Intent)
	}
}

func TestClassify_HostedModelTimeoutIsBounded(t *testing.T) {
	// Arrange
	model := &mocks.MockIntentModel{
		ClassifyIntentFunc: func(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	svc, err := NewService(model, DefaultKeywordTable(), Config{ModelTimeout: 50 * time.Millisecond}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	start := time.Now()
	result := svc.Classify(context.Background(), "describe the scene", domain.TurnContext{})
	elapsed := time.Since(start)

	// Assert
	if elapsed > time.Second {
		t.Errorf("classification took %v, expected it bounded by the model timeout", elapsed)
	}
	if result.Intent != domain.IntentDescribeScene {
		t.Errorf("expected describe_scene from fallback, got %s", result.Intent)
	}
	if result.Source != domain.SourceLocalKeyword {
		t.Errorf("expected source local_keyword, got %s", result.Source)
	}
}

func TestClassify_HostedModelConfidenceClamped(t *testing.T) {
	// Arrange
	model := &mocks.MockIntentModel{
		ClassifyIntentFunc: func(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error) {
			return &domain.ClassificationResult{Intent: domain.IntentEmergency, Confidence: 7.5}, nil
		},
	}
	svc, err := NewService(model, DefaultKeywordTable(), Config{}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	result := svc.Classify(context.Background(), "help", domain.TurnContext{})

	// Assert
	if result.Confidence != 1.0 {
		t.Errorf("expected confidence clamped to 1.0, got %f", result.Confidence)
	}
}

func TestClassify_HostedModelParametersFiltered(t *testing.T) {
	// Arrange
	model := &mocks.MockIntentModel{
		ClassifyIntentFunc: func(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error) {
			return &domain.ClassificationResult{
				Intent: domain.IntentChangeLanguage,
				Parameters: map[string]interface{}{
					"language":   "id",
					"volume":     11,
					"transcript": "raw model junk",
				},
				Confidence: 0.95,
			}, nil
		},
	}
	svc, err := NewService(model, DefaultKeywordTable(), Config{}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	result := svc.Classify(context.Background(), "change language to indonesian", domain.TurnContext{})

	// Assert
	if result.Parameters["language"] != "id" {
		t.Errorf("expected language parameter kept, got %v", result.Parameters)
	}
	if _, found := result.Parameters["volume"]; found {
		t.Error("expected out-of-schema parameter to be dropped")
	}
	if _, found := result.Parameters["transcript"]; found {
		t.Error("expected out-of-schema parameter to be dropped")
	}
}

func TestClassify_RetryRepeatsLastIntent(t *testing.T) {
	// Arrange
	svc := newLocalOnlyService(t)
	turn := domain.TurnContext{LastIntent: domain.IntentReadText}

	// Act
	result := svc.Classify(context.Background(), "try again", turn)

	// Assert
	if result.Intent != domain.IntentReadText {
		t.Errorf("expected read_text, got %s", result.Intent)
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	// Arrange
	svc := newLocalOnlyService(t)

	// Act
	first := svc.Classify(context.Background(), "take me to the library", domain.TurnContext{})
	second := svc.Classify(context.Background(), "take me to the library", domain.TurnContext{})

	// Assert
	if first.Intent != second.Intent || first.Confidence != second.Confidence || first.Source != second.Source {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestClassify_EndToEndScenarios(t *testing.T) {
	// Arrange
	svc := newLocalOnlyService(t)

	cases := []struct {
		utterance  string
		wantIntent domain.Intent
		wantParams map[string]interface{}
	}{
		{"change language to Indonesian", domain.IntentChangeLanguage, map[string]interface{}{"language": "id"}},
		{"enroll John", domain.IntentEnrollFace, map[string]interface{}{"person_name": "John"}},
		{"take me to the library", domain.IntentNavigate, map[string]interface{}{"destination": "library"}},
		{"call for help", domain.IntentEmergency, nil},
	}

	for _, tc := range cases {
		// Act
		result := svc.Classify(context.Background(), tc.utterance, domain.TurnContext{})

		// Assert
		if result.Intent != tc.wantIntent {
			t.Errorf("%q: expected %s, got %s", tc.utterance, tc.wantIntent, result.Intent)
			continue
		}
		for key, want := range tc.wantParams {
			if got := result.Parameters[key]; got != want {
				t.Errorf("%q: expected %s=%v, got %v", tc.utterance, key, want, got)
			}
		}
	}
}
