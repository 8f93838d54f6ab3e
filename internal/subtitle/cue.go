package subtitle

// Word is a single transcribed word with its timing.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`   // seconds
}

// Segment is an utterance/sentence grouping emitted by the transcription
// engine, used by the natural segmentation policy.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Cue is one timed subtitle entry. Index is 1-based and strictly
// increasing with no gaps within a Document.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Document is an ordered sequence of non-overlapping cues.
type Document struct {
	Cues []Cue
}
