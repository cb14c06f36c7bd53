package interpreter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/observability/telemetry"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

// Config holds the interpreter tuning knobs. All confidences are
// configuration, not computed.
type Config struct {
	ModelTimeout         time.Duration
	AcceptThreshold      float64
	ExactMatchConfidence float64
	FuzzyMatchConfidence float64
}

const (
	defaultModelTimeout         = 4 * time.Second
	defaultAcceptThreshold      = 0.5
	defaultExactMatchConfidence = 1.0
	defaultFuzzyMatchConfidence = 0.6
)

// Service maps a recognized utterance to a ClassificationResult. The
// hosted model is tried first when configured; all of its failure
// modes fall through silently to the local keyword table.
type Service struct {
	model ports.IntentModel // nil when the hosted path is disabled
	table []KeywordEntry
	cfg   Config
	log   *zap.Logger
}

func NewService(model ports.IntentModel, table []KeywordEntry, cfg Config, log *zap.Logger) (*Service, error) {
	if len(table) == 0 {
		return nil, errors.New("interpreter: keyword table is empty")
	}
	for _, entry := range table {
		if _, ok := domain.ParseIntent(string(entry.Intent)); !ok {
			return nil, fmt.Errorf("interpreter: table entry has invalid intent %q", entry.Intent)
		}
		if len(entry.Phrases) == 0 {
			return nil, fmt.Errorf("interpreter: intent %q has no phrases", entry.Intent)
		}
		for _, phrase := range entry.Phrases {
			if normalize(phrase) == "" {
				return nil, fmt.Errorf("interpreter: intent %q has an empty phrase", entry.Intent)
			}
		}
	}

	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = defaultModelTimeout
	}
	if cfg.AcceptThreshold <= 0 {
		cfg.AcceptThreshold = defaultAcceptThreshold
	}
	if cfg.ExactMatchConfidence <= 0 {
		cfg.ExactMatchConfidence = defaultExactMatchConfidence
	}
	if cfg.FuzzyMatchConfidence <= 0 {
		cfg.FuzzyMatchConfidence = defaultFuzzyMatchConfidence
	}

	return &Service{
		model: model,
		table: table,
		cfg:   cfg,
		log:   log,
	}, nil
}

// Classify resolves one utterance. It never returns an error and
// never blocks past the configured model timeout: every per-call
// failure collapses into the local fallback or the unknown result.
func (s *Service) Classify(ctx context.Context, utterance string, turn domain.TurnContext) domain.ClassificationResult {
	normalized := normalize(utterance)

	// "try again" re-resolves the previous turn's intent.
	if isRetry(normalized) && turn.LastIntent != "" && turn.LastIntent != domain.IntentUnknown {
		return domain.ClassificationResult{
			Intent:     turn.LastIntent,
			Parameters: map[string]interface{}{},
			Confidence: s.cfg.ExactMatchConfidence,
			Source:     domain.SourceLocalKeyword,
		}
	}

	if s.model != nil {
		if result := s.classifyHosted(ctx, utterance, turn); result != nil {
			telemetry.CommandsClassified.WithLabelValues(string(result.Intent), string(domain.SourceHostedModel)).Inc()
			return *result
		}
	}

	result := s.classifyLocal(utterance, normalized)
	telemetry.CommandsClassified.WithLabelValues(string(result.Intent), string(result.Source)).Inc()
	return result
}

// classifyHosted runs the bounded-time hosted-model path. A nil return
// means fall through to local matching; the reason is logged and never
// surfaced to the caller.
func (s *Service) classifyHosted(ctx context.Context, utterance string, turn domain.TurnContext) *domain.ClassificationResult {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ModelTimeout)
	defer cancel()

	start := time.Now()
	raw, err := s.model.ClassifyIntent(ctx, utterance, turn)
	telemetry.ModelLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Debug("hosted model classification failed, using local fallback", zap.Error(err))
		return nil
	}
	if raw == nil {
		return nil
	}

	intent, ok := domain.ParseIntent(string(raw.Intent))
	if !ok || intent == domain.IntentUnknown {
		s.log.Debug("hosted model returned intent outside closed set",
			zap.String("intent", string(raw.Intent)))
		return nil
	}

	confidence := clamp01(raw.Confidence)
	if confidence < s.cfg.AcceptThreshold {
		s.log.Debug("hosted model confidence below accept threshold",
			zap.String("intent", string(intent)),
			zap.Float64("confidence", confidence))
		return nil
	}

	return &domain.ClassificationResult{
		Intent:     intent,
		Parameters: filterParameters(intent, raw.Parameters),
		Confidence: confidence,
		Source:     domain.SourceHostedModel,
	}
}

func (s *Service) classifyLocal(utterance, normalized string) domain.ClassificationResult {
	if intent, _, ok := matchExact(s.table, normalized); ok {
		return domain.ClassificationResult{
			Intent:     intent,
			Parameters: extractSlots(intent, utterance, normalized),
			Confidence: s.cfg.ExactMatchConfidence,
			Source:     domain.SourceLocalKeyword,
		}
	}

	if intent, _, ok := matchFuzzy(s.table, normalized); ok {
		return domain.ClassificationResult{
			Intent:     intent,
			Parameters: extractSlots(intent, utterance, normalized),
			Confidence: s.cfg.FuzzyMatchConfidence,
			Source:     domain.SourceLocalKeyword,
		}
	}

	return domain.ClassificationResult{
		Intent:     domain.IntentUnknown,
		Parameters: map[string]interface{}{},
		Confidence: 0,
		Source:     domain.SourceNone,
	}
}

func isRetry(normalized string) bool {
	switch normalized {
	case "try again", "again", "repeat that", "one more time", "do that again":
		return true
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
