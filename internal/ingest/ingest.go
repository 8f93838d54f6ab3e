package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for uploads whose container type is
// not accepted. The check runs before any expensive work begins.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

var audioExtensions = map[string]bool{
	".m4a": true, ".mp3": true, ".wav": true, ".aac": true,
	".ogg": true, ".oga": true, ".flac": true, ".wma": true,
}

// IsAudioFile reports whether the filename has an accepted audio extension.
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// ValidateFilename rejects uploads with unsupported container types.
func ValidateFilename(name string) error {
	if name == "" || !IsAudioFile(name) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
	return nil
}

// Workspace is a scoped temporary directory for one conversion's
// artifacts. Close removes everything it holds, on every exit path.
type Workspace struct {
	dir string
}

// NewWorkspace creates a fresh temporary directory.
func NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "convert-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Close deletes the workspace and all files created in it.
func (w *Workspace) Close() {
	os.RemoveAll(w.dir)
}

// SaveUpload spools the uploaded audio into the workspace under its
// original extension and returns the path.
func (w *Workspace) SaveUpload(r io.Reader, filename string) (string, error) {
	path := filepath.Join(w.dir, "upload"+strings.ToLower(filepath.Ext(filename)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

// ToWAV re-encodes the uploaded container to the raw format the engine
// consumes: PCM s16le, 16kHz, mono.
func (w *Workspace) ToWAV(ctx context.Context, srcPath string) (string, error) {
	wavPath := filepath.Join(w.dir, "audio.wav")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", srcPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000", // 16kHz
		"-ac", "1", // mono
		"-y",
		wavPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg: %s: %w", string(output), err)
	}

	return wavPath, nil
}
