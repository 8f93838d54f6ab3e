package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/speech-subs/backend/internal/api/middleware"
	"github.com/speech-subs/backend/internal/arbiter"
	"github.com/speech-subs/backend/internal/db"
	"github.com/speech-subs/backend/internal/ingest"
	"github.com/speech-subs/backend/internal/subtitle"
)

type ConvertHandler struct {
	arb       *arbiter.Arbitrator
	db        *db.Database
	maxUpload int64
}

func NewConvertHandler(arb *arbiter.Arbitrator, database *db.Database, maxUpload int64) *ConvertHandler {
	return &ConvertHandler{arb: arb, db: database, maxUpload: maxUpload}
}

// Convert accepts an audio upload and returns a synchronized SRT track.
// Superseded conversions return a structured cancellation body instead
// of a file; that is a valid outcome, not an error.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.db.GetUserByID(claims.UserID)
	if err != nil {
		jsonError(w, "user not found", http.StatusNotFound)
		return
	}
	if !h.db.CanConvert(user) {
		jsonError(w, "free conversion limit reached", http.StatusForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "upload too large or malformed", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "audio file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := ingest.ValidateFilename(header.Filename); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	settings, err := parseSettings(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := ingest.NewWorkspace()
	if err != nil {
		jsonError(w, "failed to prepare workspace", http.StatusInternalServerError)
		return
	}
	defer ws.Close()

	srcPath, err := ws.SaveUpload(file, header.Filename)
	if err != nil {
		jsonError(w, "failed to store upload", http.StatusInternalServerError)
		return
	}

	wavPath, err := ws.ToWAV(r.Context(), srcPath)
	if err != nil {
		log.Printf("[convert] audio decode failed for %s: %v", header.Filename, err)
		jsonError(w, "failed to decode audio: "+err.Error(), http.StatusBadRequest)
		return
	}

	job := arbiter.NewJob(settings, filepath.Base(header.Filename))
	outcome, err := h.arb.Convert(r.Context(), job, wavPath)
	if err != nil {
		jsonError(w, "conversion failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if outcome.Status == arbiter.StatusSuperseded {
		jsonResponse(w, map[string]string{
			"status":  "cancelled",
			"message": outcome.Message,
			"job_id":  outcome.JobID,
		}, http.StatusOK)
		return
	}

	var doc subtitle.Document
	if settings.UseNaturalSegmentation {
		doc = subtitle.SegmentNatural(outcome.Segments)
	} else {
		doc = subtitle.SegmentFixed(outcome.Words, settings.WordsPerSegment)
	}
	doc = subtitle.Quantize(doc, settings.FrameRate)
	srt := subtitle.EncodeSRT(doc)

	if err := h.db.IncrementUsage(user.ID); err != nil {
		log.Printf("[convert] failed to record usage for user %d: %v", user.ID, err)
	}

	outName := srtFilename(header.Filename)
	w.Header().Set("Content-Type", "application/x-subrip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outName))
	w.Header().Set("X-Job-Id", outcome.JobID)
	if outcome.SupersededID != "" {
		w.Header().Set("X-Superseded-Job-Id", outcome.SupersededID)
		w.Header().Set("X-Superseded-Filename", srtFilename(outcome.SupersededFilename))
	}
	w.Write([]byte(srt))
}

// parseSettings reads conversion settings from the multipart form,
// applying defaults for omitted fields and validating ranges.
func parseSettings(r *http.Request) (arbiter.Settings, error) {
	s := arbiter.DefaultSettings()

	if v := r.FormValue("words_per_segment"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, errors.New("words_per_segment must be an integer")
		}
		s.WordsPerSegment = n
	}
	if v := r.FormValue("frame_rate"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return s, errors.New("frame_rate must be a number")
		}
		s.FrameRate = f
	}
	if v := r.FormValue("use_natural_segmentation"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, errors.New("use_natural_segmentation must be a boolean")
		}
		s.UseNaturalSegmentation = b
	}
	if v := r.FormValue("input_language"); v != "" {
		s.InputLanguage = strings.ToLower(strings.TrimSpace(v))
	}
	if v := r.FormValue("target_language"); v != "" {
		s.TargetLanguage = strings.ToLower(strings.TrimSpace(v))
	}

	return s, s.Validate()
}

// srtFilename replaces the upload's extension with .srt.
func srtFilename(uploadName string) string {
	base := filepath.Base(uploadName)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".srt"
}
