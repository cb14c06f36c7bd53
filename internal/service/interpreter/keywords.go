package interpreter

import (
	"strings"
	"unicode"

	"github.com/Khaf-dev/aiforus/internal/domain"
)

// KeywordEntry binds one intent to its trigger phrases. The table is
// ordered by specificity: multi-word phrases are declared before the
// single generic words they contain, so "who do you know" resolves to
// list_faces before the bare "who" of general_question can shadow it.
// Within equal specificity the first declared entry wins.
type KeywordEntry struct {
	Intent  domain.Intent
	Phrases []string
}

// DefaultKeywordTable is the built-in synonym table. It is loaded once
// at construction and treated as immutable afterwards.
func DefaultKeywordTable() []KeywordEntry {
	return []KeywordEntry{
		{domain.IntentListFaces, []string{
			"who do you know",
			"which people do you know",
			"list the faces",
			"list faces",
		}},
		{domain.IntentEnrollFace, []string{
			"teach me the face of",
			"remember this person",
			"this person is",
			"enroll",
			"register",
		}},
		{domain.IntentChangeLanguage, []string{
			"change language to",
			"change the language to",
			"switch language to",
			"switch to",
			"speak in",
		}},
		{domain.IntentDetectSound, []string{
			"what do you hear",
			"what sound is that",
			"what sounds are there",
			"listen for sounds",
		}},
		{domain.IntentDescribeScene, []string{
			"describe the scene",
			"what do you see",
			"describe my surroundings",
			"what is around me",
			"what is in front of me",
			"describe",
		}},
		{domain.IntentReadText, []string{
			"what does it say",
			"read the text",
			"read this",
			"is there any text",
			"read",
		}},
		{domain.IntentDetectObjects, []string{
			"what objects are there",
			"identify the objects",
			"detect objects",
			"what things",
			"identify",
		}},
		{domain.IntentRecognizeFaces, []string{
			"who is in front of me",
			"do you know this person",
			"who is this",
			"recognize faces",
			"any familiar faces",
		}},
		{domain.IntentNavigate, []string{
			"take me to",
			"navigate to",
			"directions to",
			"how do i get to",
			"where am i",
			"go to",
			"navigate",
		}},
		{domain.IntentEmergency, []string{
			"call for help",
			"i need help",
			"emergency",
			"danger",
			"help",
			"sos",
		}},
		{domain.IntentExit, []string{
			"shut down",
			"turn off",
			"goodbye",
			"bye",
			"exit",
			"quit",
			"stop",
		}},
		{domain.IntentGeneralQuestion, []string{
			"what", "how", "why", "when", "where", "who",
		}},
	}
}

// normalize lowercases the utterance and strips punctuation, leaving a
// single-space-separated token stream.
func normalize(utterance string) string {
	var b strings.Builder
	b.Grow(len(utterance))
	for _, r := range strings.ToLower(utterance) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsPhrase reports a word-boundary containment of phrase in the
// normalized utterance.
func containsPhrase(normalized, phrase string) bool {
	return strings.Contains(" "+normalized+" ", " "+phrase+" ")
}

// matchExact walks the table in declaration order and returns the
// first phrase contained verbatim in the utterance.
func matchExact(table []KeywordEntry, normalized string) (domain.Intent, string, bool) {
	for _, entry := range table {
		for _, phrase := range entry.Phrases {
			if containsPhrase(normalized, phrase) {
				return entry.Intent, phrase, true
			}
		}
	}
	return domain.IntentUnknown, "", false
}

// matchFuzzy retries the table with stemmed tokens, so "reading the
// sign" still reaches read_text. Every token of the phrase must be
// present, in any order.
func matchFuzzy(table []KeywordEntry, normalized string) (domain.Intent, string, bool) {
	utteranceStems := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		utteranceStems[stem(tok)] = struct{}{}
	}
	for _, entry := range table {
		for _, phrase := range entry.Phrases {
			if phraseStemsIn(phrase, utteranceStems) {
				return entry.Intent, phrase, true
			}
		}
	}
	return domain.IntentUnknown, "", false
}

func phraseStemsIn(phrase string, utteranceStems map[string]struct{}) bool {
	for _, tok := range strings.Fields(phrase) {
		if _, ok := utteranceStems[stem(tok)]; !ok {
			return false
		}
	}
	return true
}

// stem strips common English suffixes. Deliberately crude: it only has
// to align inflections of the table phrases, not be a real stemmer.
func stem(word string) string {
	for _, suffix := range []string{"ing", "ies", "ed", "es", "s"} {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= 3 {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}
