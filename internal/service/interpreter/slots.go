package interpreter

import (
	"strings"

	"github.com/Khaf-dev/aiforus/internal/domain"
)

// parameterSchema lists the parameter keys each intent may carry. Keys
// outside the schema are dropped, whichever path produced them.
var parameterSchema = map[domain.Intent][]string{
	domain.IntentDescribeScene:   {"detailed"},
	domain.IntentReadText:        {},
	domain.IntentDetectObjects:   {},
	domain.IntentRecognizeFaces:  {},
	domain.IntentEnrollFace:      {"person_name"},
	domain.IntentListFaces:       {},
	domain.IntentDetectSound:     {},
	domain.IntentNavigate:        {"destination"},
	domain.IntentEmergency:       {},
	domain.IntentChangeLanguage:  {"language"},
	domain.IntentGeneralQuestion: {"query"},
	domain.IntentExit:            {},
	domain.IntentUnknown:         {},
}

// languageCodes maps spoken language names to ISO 639-1 codes.
var languageCodes = map[string]string{
	"english":    "en",
	"indonesian": "id",
	"malay":      "ms",
	"javanese":   "jv",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"portuguese": "pt",
	"italian":    "it",
	"dutch":      "nl",
	"chinese":    "zh",
	"mandarin":   "zh",
	"japanese":   "ja",
	"korean":     "ko",
	"arabic":     "ar",
	"hindi":      "hi",
	"russian":    "ru",
}

// filterParameters drops any key the intent's schema does not allow.
func filterParameters(intent domain.Intent, params map[string]interface{}) map[string]interface{} {
	filtered := make(map[string]interface{})
	allowed, ok := parameterSchema[intent]
	if !ok {
		return filtered
	}
	for _, key := range allowed {
		if v, found := params[key]; found {
			filtered[key] = v
		}
	}
	return filtered
}

// extractSlots pulls intent-specific parameters out of the utterance.
// utterance keeps the speaker's casing (for proper nouns), normalized
// is the lowercased punctuation-free form.
func extractSlots(intent domain.Intent, utterance, normalized string) map[string]interface{} {
	params := make(map[string]interface{})

	switch intent {
	case domain.IntentEnrollFace:
		if name := extractPersonName(utterance); name != "" {
			params["person_name"] = name
		}

	case domain.IntentNavigate:
		if dest := extractDestination(normalized); dest != "" {
			params["destination"] = dest
		}

	case domain.IntentChangeLanguage:
		if lang := extractLanguage(normalized); lang != "" {
			params["language"] = lang
		}

	case domain.IntentDescribeScene:
		if containsPhrase(normalized, "detail") || containsPhrase(normalized, "detailed") || containsPhrase(normalized, "details") {
			params["detailed"] = true
		}

	case domain.IntentGeneralQuestion:
		params["query"] = strings.TrimSpace(utterance)
	}

	return filterParameters(intent, params)
}

// extractPersonName captures the proper-noun token following an
// enrollment trigger: "enroll John", "register Sarah as a friend",
// "teach me the face of Maria".
func extractPersonName(utterance string) string {
	tokens := tokenizePreservingCase(utterance)
	lower := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = strings.ToLower(t)
	}

	// "register X as Y" names the person X, not Y.
	name := ""
	for i, tok := range lower {
		switch tok {
		case "enroll", "register", "remember":
			if i+1 < len(tokens) && !isStopword(lower[i+1]) {
				name = tokens[i+1]
			}
		case "of", "is":
			if name == "" && i+1 < len(tokens) && !isStopword(lower[i+1]) {
				name = tokens[i+1]
			}
		}
	}
	if name == "" {
		return ""
	}
	return titleCase(name)
}

func titleCase(word string) string {
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func extractDestination(normalized string) string {
	tokens := strings.Fields(normalized)
	idx := -1
	for i, tok := range tokens {
		if tok == "to" {
			idx = i
		}
	}
	if idx < 0 || idx+1 >= len(tokens) {
		return ""
	}
	rest := tokens[idx+1:]
	for len(rest) > 0 && isArticle(rest[0]) {
		rest = rest[1:]
	}
	return strings.Join(rest, " ")
}

func extractLanguage(normalized string) string {
	tokens := strings.Fields(normalized)
	for i := len(tokens) - 1; i >= 0; i-- {
		if code, ok := languageCodes[tokens[i]]; ok {
			return code
		}
	}
	// "switch to id" with the bare code spoken.
	last := ""
	if len(tokens) > 0 {
		last = tokens[len(tokens)-1]
	}
	if len(last) == 2 && !isStopword(last) {
		return last
	}
	return ""
}

func tokenizePreservingCase(utterance string) []string {
	return strings.FieldsFunc(utterance, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
}

func isArticle(tok string) bool {
	return tok == "the" || tok == "a" || tok == "an"
}

func isStopword(tok string) bool {
	switch tok {
	case "a", "an", "the", "this", "that", "face", "person", "me", "my", "as", "to", "of", "is":
		return true
	}
	return false
}
