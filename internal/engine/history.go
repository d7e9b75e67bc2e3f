package engine

import (
	"time"

	"github.com/google/uuid"
)

// Record is one entry in the command audit trail. Failure messages are
// captured verbatim from the error that caused them.
type Record struct {
	ID        string    `json:"id"`
	Session   string    `json:"session"`
	Timestamp time.Time `json:"timestamp"`
	Command   string    `json:"command"`
	Target    string    `json:"target"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// record appends one audit entry, dropping the oldest entries beyond the
// profile history cap.
func (e *Engine) record(command, target string, err error) {
	rec := Record{
		ID:        uuid.NewString(),
		Session:   e.session,
		Timestamp: e.now(),
		Command:   command,
		Target:    target,
		Success:   err == nil,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	e.history = append(e.history, rec)
	if limit := e.profile.MaxHistory; limit > 0 && len(e.history) > limit {
		e.history = e.history[len(e.history)-limit:]
	}
}

// History returns a copy of the audit trail in append order.
func (e *Engine) History() []Record {
	out := make([]Record, len(e.history))
	copy(out, e.history)
	return out
}
