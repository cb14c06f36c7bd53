package domain

// CommandInput is one turn from the device client: the recognized
// utterance plus whatever sensor payloads accompanied it. Frame and
// Audio are optional; handlers that need a missing payload reply with
// a spoken hint instead of failing.
type CommandInput struct {
	Utterance string `json:"utterance"`
	Frame     []byte `json:"frame,omitempty"` // current camera frame
	Audio     []byte `json:"audio,omitempty"` // ambient audio window
}

// AssistantReply is what the dispatch loop sends back to the client
// after executing the resolved intent.
type AssistantReply struct {
	Text       string               `json:"text"`
	Intent     Intent               `json:"intent"`
	Confidence float64              `json:"confidence"`
	Source     ClassificationSource `json:"source"`
	ShouldExit bool                 `json:"should_exit,omitempty"`
}
