package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/speech-subs/backend/internal/subtitle"
)

// WhisperCppClient talks to the whisper.cpp HTTP server (whisper-server).
// The server loads its model once at startup; this client is the
// process-wide handle to that single engine instance.
type WhisperCppClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWhisperCppClient creates a client for the whisper.cpp server
func NewWhisperCppClient(baseURL string) *WhisperCppClient {
	return &WhisperCppClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Minute, // transcription can be very long
		},
	}
}

func (c *WhisperCppClient) Name() string {
	return "whisper.cpp"
}

// verboseResponse is the verbose_json response shape of whisper-server.
type verboseResponse struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
		Words []struct {
			Word  string  `json:"word"`
			Start float64 `json:"start"`
			End   float64 `json:"end"`
		} `json:"words"`
	} `json:"segments"`
}

// Transcribe sends the WAV file to whisper-server and returns the
// word-level transcript. Translation mode (target "en") uses the word
// timestamps from the translated output verbatim.
func (c *WhisperCppClient) Transcribe(ctx context.Context, req Request) (*Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(req.AudioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return nil, fmt.Errorf("copy audio data: %w", err)
	}

	writer.WriteField("response_format", "verbose_json")
	writer.WriteField("temperature", "0.0")
	writer.WriteField("word_timestamps", "true")
	if req.InputLanguage != "" && req.InputLanguage != "auto" {
		writer.WriteField("language", req.InputLanguage)
	}
	if req.Translate() {
		writer.WriteField("translate", "true")
	}

	writer.Close()

	url := c.baseURL + "/inference"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	log.Printf("[engine] sending request to %s (audio: %s, translate: %v)", url, req.AudioPath, req.Translate())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: whisper server request: %v", ErrEngine, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrEngine, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: whisper server error (status %d): %s", ErrEngine, resp.StatusCode, string(body))
	}

	var vr verboseResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrEngine, err)
	}

	result := &Result{Language: vr.Language}
	if req.Translate() {
		result.Language = req.TargetLanguage
	}

	for _, seg := range vr.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		result.Segments = append(result.Segments, subtitle.Segment{
			Text:  text,
			Start: seg.Start,
			End:   seg.End,
		})

		if len(seg.Words) > 0 {
			for _, w := range seg.Words {
				word := strings.TrimSpace(w.Word)
				if word == "" {
					continue
				}
				result.Words = append(result.Words, subtitle.Word{
					Text:  word,
					Start: w.Start,
					End:   w.End,
				})
			}
			continue
		}

		// Some models omit word timings; spread the segment's words
		// evenly over its duration.
		result.Words = append(result.Words, spreadWords(text, seg.Start, seg.End)...)
	}

	return result, nil
}

// spreadWords assigns evenly spaced timings to the words of a segment
// that lacks word-level timestamps.
func spreadWords(text string, start, end float64) []subtitle.Word {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	step := (end - start) / float64(len(fields))
	words := make([]subtitle.Word, len(fields))
	for i, f := range fields {
		words[i] = subtitle.Word{
			Text:  f,
			Start: start + float64(i)*step,
			End:   start + float64(i+1)*step,
		}
	}
	return words
}
