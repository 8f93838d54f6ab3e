package arbiter

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/speech-subs/backend/internal/engine"
	"github.com/speech-subs/backend/internal/subtitle"
)

// Status represents the current state of a conversion job
type Status string

const (
	StatusPending    Status = "pending"
	StatusRunning    Status = "running"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusSuperseded Status = "superseded"
)

// Job is a single admitted conversion. It is owned by the arbitrator
// from admission until its outcome is returned.
type Job struct {
	ID       string
	Filename string // original upload name, for response metadata
	Settings Settings
	Status   Status

	seq       uint64
	displaced *Job
}

// NewJob creates a pending job with validated settings.
func NewJob(settings Settings, filename string) *Job {
	return &Job{
		ID:       uuid.New().String(),
		Filename: filename,
		Settings: settings,
		Status:   StatusPending,
	}
}

// Outcome is the typed result of a conversion attempt. Superseded is a
// valid outcome, distinct from both success and error: the job was
// displaced by a newer submission and its transcript was discarded.
type Outcome struct {
	Status             Status
	JobID              string
	SupersededID       string // id of the unfinished job this one displaced, if any
	SupersededFilename string
	Words              []subtitle.Word
	Segments           []subtitle.Segment
	Language           string
	Message            string
}

// Arbitrator guarantees that only the most recently submitted
// conversion's transcript is ever turned into a response. The engine is
// not safe for concurrent use, so all inference calls are serialized
// through a single execution slot; queueing behind that slot does not
// by itself cancel a job.
type Arbitrator struct {
	reg    *Register
	engine engine.Transcriber

	engineMu sync.Mutex // the single engine execution slot
}

// New creates an arbitrator around the process-wide register and the
// engine singleton.
func New(reg *Register, eng engine.Transcriber) *Arbitrator {
	return &Arbitrator{reg: reg, engine: eng}
}

// Convert admits the job, runs the engine, and applies latest-wins
// arbitration. Cancellation is cooperative: an in-flight inference is
// never interrupted, its result is withheld after the fact when a newer
// admission exists. Engine failures are returned as errors and do not
// disturb sequence bookkeeping for other jobs.
func (a *Arbitrator) Convert(ctx context.Context, job *Job, audioPath string) (*Outcome, error) {
	job.seq, job.displaced = a.reg.admit(job)
	job.Status = StatusRunning
	log.Printf("[arbiter] admitted job %s (seq %d)", job.ID, job.seq)

	a.engineMu.Lock()
	result, err := a.engine.Transcribe(ctx, engine.Request{
		AudioPath:      audioPath,
		InputLanguage:  job.Settings.InputLanguage,
		TargetLanguage: job.Settings.TargetLanguage,
	})
	a.engineMu.Unlock()

	if err != nil {
		job.Status = StatusFailed
		a.reg.resolve(job.seq)
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	if !a.reg.resolve(job.seq) {
		job.Status = StatusSuperseded
		log.Printf("[arbiter] job %s superseded, discarding transcript", job.ID)
		return &Outcome{
			Status:  StatusSuperseded,
			JobID:   job.ID,
			Message: "conversion superseded by a newer request",
		}, nil
	}

	job.Status = StatusCompleted
	log.Printf("[arbiter] job %s completed (%d words)", job.ID, len(result.Words))
	outcome := &Outcome{
		Status:   StatusCompleted,
		JobID:    job.ID,
		Words:    result.Words,
		Segments: result.Segments,
		Language: result.Language,
	}
	if job.displaced != nil {
		outcome.SupersededID = job.displaced.ID
		outcome.SupersededFilename = job.displaced.Filename
	}
	return outcome, nil
}
