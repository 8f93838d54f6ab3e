package arbiter

import "testing"

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"min words", func(s *Settings) { s.WordsPerSegment = 1 }, false},
		{"max words", func(s *Settings) { s.WordsPerSegment = MaxWordsPerSegment }, false},
		{"zero words", func(s *Settings) { s.WordsPerSegment = 0 }, true},
		{"too many words", func(s *Settings) { s.WordsPerSegment = MaxWordsPerSegment + 1 }, true},
		{"min frame rate", func(s *Settings) { s.FrameRate = MinFrameRate }, false},
		{"max frame rate", func(s *Settings) { s.FrameRate = MaxFrameRate }, false},
		{"zero frame rate", func(s *Settings) { s.FrameRate = 0 }, true},
		{"negative frame rate", func(s *Settings) { s.FrameRate = -30 }, true},
		{"excessive frame rate", func(s *Settings) { s.FrameRate = 240 }, true},
		{"empty input language", func(s *Settings) { s.InputLanguage = "" }, true},
		{"translate to english", func(s *Settings) { s.InputLanguage = "ja"; s.TargetLanguage = "en" }, false},
		{"same source and target", func(s *Settings) { s.InputLanguage = "ko"; s.TargetLanguage = "ko" }, false},
		{"unsupported target", func(s *Settings) { s.InputLanguage = "en"; s.TargetLanguage = "ko" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
