package arbiter

import "fmt"

const (
	DefaultWordsPerSegment = 8
	MaxWordsPerSegment     = 50

	DefaultFrameRate = 30.0
	MinFrameRate     = 1.0
	MaxFrameRate     = 120.0
)

// Settings are the conversion parameters for a single job. They are
// validated before admission and immutable once the job starts.
type Settings struct {
	WordsPerSegment        int     `json:"words_per_segment"`
	FrameRate              float64 `json:"frame_rate"`
	UseNaturalSegmentation bool    `json:"use_natural_segmentation"`
	InputLanguage          string  `json:"input_language"`
	TargetLanguage         string  `json:"target_language"`
}

// DefaultSettings returns the settings used when a form field is omitted.
func DefaultSettings() Settings {
	return Settings{
		WordsPerSegment: DefaultWordsPerSegment,
		FrameRate:       DefaultFrameRate,
		InputLanguage:   "auto",
		TargetLanguage:  "auto",
	}
}

// Validate rejects out-of-range settings before any expensive work
// begins. Whisper's translate mode only produces English, so the only
// accepted targets are "auto", "en", or the input language itself.
func (s Settings) Validate() error {
	if s.WordsPerSegment < 1 || s.WordsPerSegment > MaxWordsPerSegment {
		return fmt.Errorf("words_per_segment must be between 1 and %d", MaxWordsPerSegment)
	}
	if s.FrameRate < MinFrameRate || s.FrameRate > MaxFrameRate {
		return fmt.Errorf("frame_rate must be between %g and %g", MinFrameRate, MaxFrameRate)
	}
	if s.InputLanguage == "" || s.TargetLanguage == "" {
		return fmt.Errorf("language must be a code or \"auto\"")
	}
	if s.TargetLanguage != "auto" && s.TargetLanguage != "en" && s.TargetLanguage != s.InputLanguage {
		return fmt.Errorf("translation target %q not supported: the engine only translates into \"en\"", s.TargetLanguage)
	}
	return nil
}
