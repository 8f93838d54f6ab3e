package arbiter

import "sync"

// Register is the process-wide record of the latest admitted
// conversion. It is created once at startup and lives for the whole
// process; all sequence bookkeeping happens under its lock.
type Register struct {
	mu         sync.Mutex
	nextSeq    uint64
	latestSeq  uint64
	unresolved map[uint64]*Job // jobs admitted but not yet resolved
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{unresolved: make(map[uint64]*Job)}
}

// admit assigns the next sequence number, records the job as the
// latest, and returns the unfinished job this admission displaces, if
// any.
func (r *Register) admit(job *Job) (seq uint64, displaced *Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSeq++
	seq = r.nextSeq

	if prev, ok := r.unresolved[r.latestSeq]; ok {
		displaced = prev
	}

	r.latestSeq = seq
	r.unresolved[seq] = job
	return seq, displaced
}

// resolve removes the job from bookkeeping and reports whether it was
// still the latest admission. The check and the removal happen under
// one lock acquisition so two jobs can never both observe themselves
// as latest.
func (r *Register) resolve(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.unresolved, seq)
	return seq == r.latestSeq
}
