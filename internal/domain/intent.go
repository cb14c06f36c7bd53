package domain

// Intent is the closed set of actions the assistant can perform.
// Adding a value here requires a matching handler in the assistant
// dispatch switch; the compiler-checked exhaustive switch lives in
// internal/service/assistant.
type Intent string

const (
	IntentDescribeScene   Intent = "describe_scene"
	IntentReadText        Intent = "read_text"
	IntentDetectObjects   Intent = "detect_objects"
	IntentRecognizeFaces  Intent = "recognize_faces"
	IntentEnrollFace      Intent = "enroll_face"
	IntentListFaces       Intent = "list_faces"
	IntentDetectSound     Intent = "detect_sound"
	IntentNavigate        Intent = "navigate"
	IntentEmergency       Intent = "emergency"
	IntentChangeLanguage  Intent = "change_language"
	IntentGeneralQuestion Intent = "general_question"
	IntentExit            Intent = "exit"
	IntentUnknown         Intent = "unknown"
)

// ParseIntent maps a raw string (e.g. from the hosted model) onto the
// closed set. Anything outside the set is rejected.
func ParseIntent(s string) (Intent, bool) {
	switch Intent(s) {
	case IntentDescribeScene, IntentReadText, IntentDetectObjects,
		IntentRecognizeFaces, IntentEnrollFace, IntentListFaces,
		IntentDetectSound, IntentNavigate, IntentEmergency,
		IntentChangeLanguage, IntentGeneralQuestion, IntentExit,
		IntentUnknown:
		return Intent(s), true
	}
	return IntentUnknown, false
}

type ClassificationSource string

const (
	SourceHostedModel  ClassificationSource = "hosted_model"
	SourceLocalKeyword ClassificationSource = "local_keyword"
	SourceNone         ClassificationSource = "none"
)

// ClassificationResult is produced fresh per utterance and never
// persisted by the interpreter itself; history logging belongs to the
// assistant service.
type ClassificationResult struct {
	Intent     Intent                 `json:"intent"`
	Parameters map[string]interface{} `json:"parameters"`
	Confidence float64                `json:"confidence"`
	Source     ClassificationSource   `json:"source"`
}

// TurnContext carries prior-turn state supplied by the caller. The
// interpreter reads it to resolve references like "try again" and
// never retains it.
type TurnContext struct {
	Language   string `json:"language"`
	LastIntent Intent `json:"last_intent"`
}
