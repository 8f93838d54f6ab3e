package engine

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const verboseJSON = `{
	"language": "en",
	"segments": [
		{
			"start": 0.0, "end": 1.5, "text": " Hello world today",
			"words": [
				{"word": " Hello", "start": 0.0, "end": 0.4},
				{"word": " world", "start": 0.5, "end": 0.9},
				{"word": " today", "start": 1.0, "end": 1.5}
			]
		},
		{"start": 2.0, "end": 4.0, "text": " no word timings here"}
	]
}`

func writeTempWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWhisperCppClient_Transcribe(t *testing.T) {
	var gotTranslate, gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inference" {
			http.NotFound(w, r)
			return
		}
		r.ParseMultipartForm(8 << 20)
		gotTranslate = r.FormValue("translate")
		gotLanguage = r.FormValue("language")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(verboseJSON))
	}))
	defer server.Close()

	client := NewWhisperCppClient(server.URL)
	result, err := client.Transcribe(context.Background(), Request{
		AudioPath:      writeTempWAV(t),
		InputLanguage:  "auto",
		TargetLanguage: "auto",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if gotTranslate != "" {
		t.Errorf("translate field sent for auto target: %q", gotTranslate)
	}
	if gotLanguage != "" {
		t.Errorf("language field sent for auto input: %q", gotLanguage)
	}

	if result.Language != "en" {
		t.Errorf("language = %q, want en", result.Language)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(result.Segments))
	}

	// First segment has explicit word timings; second is spread evenly.
	wantWords := 3 + 4
	if len(result.Words) != wantWords {
		t.Fatalf("got %d words, want %d", len(result.Words), wantWords)
	}
	if result.Words[0].Text != "Hello" || result.Words[0].End != 0.4 {
		t.Errorf("word 0 = %+v", result.Words[0])
	}

	spread := result.Words[3:]
	if spread[0].Text != "no" || spread[3].Text != "here" {
		t.Errorf("spread words = %+v", spread)
	}
	if math.Abs(spread[0].Start-2.0) > 1e-9 || math.Abs(spread[3].End-4.0) > 1e-9 {
		t.Errorf("spread timing = %v..%v, want 2.0..4.0", spread[0].Start, spread[3].End)
	}
	for i := 1; i < len(spread); i++ {
		if spread[i].Start < spread[i-1].Start {
			t.Errorf("spread words out of order at %d", i)
		}
	}
}

func TestWhisperCppClient_TranslateMode(t *testing.T) {
	var gotTranslate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(8 << 20)
		gotTranslate = r.FormValue("translate")
		w.Write([]byte(`{"language": "ja", "segments": []}`))
	}))
	defer server.Close()

	client := NewWhisperCppClient(server.URL)
	result, err := client.Transcribe(context.Background(), Request{
		AudioPath:      writeTempWAV(t),
		InputLanguage:  "ja",
		TargetLanguage: "en",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if gotTranslate != "true" {
		t.Errorf("translate field = %q, want true", gotTranslate)
	}
	if result.Language != "en" {
		t.Errorf("language = %q, want target en", result.Language)
	}
	if len(result.Words) != 0 {
		t.Errorf("silence produced %d words", len(result.Words))
	}
}

func TestWhisperCppClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewWhisperCppClient(server.URL)
	_, err := client.Transcribe(context.Background(), Request{AudioPath: writeTempWAV(t)})
	if !errors.Is(err, ErrEngine) {
		t.Fatalf("error = %v, want ErrEngine", err)
	}
}

func TestRequestTranslate(t *testing.T) {
	tests := []struct {
		input, target string
		want          bool
	}{
		{"auto", "auto", false},
		{"en", "en", false},
		{"ja", "en", true},
		{"auto", "en", true},
		{"ja", "", false},
	}

	for _, tt := range tests {
		r := Request{InputLanguage: tt.input, TargetLanguage: tt.target}
		if got := r.Translate(); got != tt.want {
			t.Errorf("Translate(%q -> %q) = %v, want %v", tt.input, tt.target, got, tt.want)
		}
	}
}
