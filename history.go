package hookrelay

import "github.com/google/uuid"

// callRecord is one remembered invocation of a historic hook.
type callRecord struct {
	// id correlates replay log lines with the original call.
	// Format: call-{uuid8} (e.g., call-a1b2c3d4)
	id       string
	args     Args
	callback func(any)
}

// history is the append-only recorder for a historic hook. Records are kept
// in memory for the caller's lifetime and never pruned. Its presence on a
// Caller is what marks the hook as historic.
type history struct {
	records []callRecord
}

func newHistory() *history {
	return &history{}
}

// add appends one call to the record and returns it.
func (h *history) add(args Args, callback func(any)) callRecord {
	rec := callRecord{
		id:       "call-" + uuid.New().String()[:8],
		args:     args,
		callback: callback,
	}
	h.records = append(h.records, rec)
	return rec
}

// all returns the records in recording order. The returned slice is shared;
// callers must not mutate it.
func (h *history) all() []callRecord {
	return h.records
}

// len returns the number of recorded calls.
func (h *history) len() int {
	return len(h.records)
}
