package engine

import (
	"context"
	"errors"

	"github.com/speech-subs/backend/internal/subtitle"
)

// ErrEngine marks failures of the speech-to-text engine itself (corrupt
// audio, unsupported language pair, server errors). These are never
// retried automatically.
var ErrEngine = errors.New("engine failure")

// Request is the input for a transcription.
type Request struct {
	AudioPath      string // absolute path to a 16kHz mono WAV file
	InputLanguage  string // "auto" or a language code hint
	TargetLanguage string // "auto" keeps the source language; "en" enables translation
}

// Result is the output of a transcription: the ordered word sequence
// with timings, the engine's own utterance segments, and the detected
// (or requested) language.
type Result struct {
	Words    []subtitle.Word
	Segments []subtitle.Segment
	Language string
}

// Transcriber is the interface to a speech-to-text engine. The engine
// is not safe for concurrent use; callers must serialize Transcribe.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
	// Name returns the engine name
	Name() string
}

// Translate reports whether the request asks for output in a language
// other than the source audio's.
func (r Request) Translate() bool {
	if r.TargetLanguage == "" || r.TargetLanguage == "auto" {
		return false
	}
	return r.TargetLanguage != r.InputLanguage
}
